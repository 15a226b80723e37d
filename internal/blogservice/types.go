package blogservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

type Blog struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url,omitempty"`
	Likes  int    `json:"likes"`
	// Comments are anonymous and append-only.
	Comments  []string  `json:"comments"`
	Owner     *Owner    `json:"owner,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"-"`
}

// Owner is the minimal summary of the user who created a blog. It is absent
// when the owning user account has since been deleted.
type Owner struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}
