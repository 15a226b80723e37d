package userservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

const (
	// AuthTokenTime is how long a login token stays valid.
	AuthTokenTime time.Duration = 7 * 24 * time.Hour
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m  *DBModel
	mb common.MessageProducer
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Password Password `json:"-"`
	// Blogs summarizes the blogs owned by this user.
	Blogs     []BlogSummary `json:"blogs"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Version   int           `json:"-"`
}

// BlogSummary is the minimal representation of an owned blog used in user
// listings.
type BlogSummary struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte
}

type Token struct {
	Plain  string    `json:"token"`
	Hash   []byte    `json:"-"`
	UserID int       `json:"-"`
	Expiry time.Time `json:"expiry"`
}
