package blogservice

// FavoriteResult identifies the single most liked blog of a list.
type FavoriteResult struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// AuthorCount pairs an author with the number of blogs they wrote.
type AuthorCount struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes pairs an author with the total likes across their blogs.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// TotalLikes sums the likes of all blogs. An empty list sums to zero.
func TotalLikes(blogs []Blog) int {
	var total int
	for _, blog := range blogs {
		total += blog.Likes
	}

	return total
}

// FavoriteBlog returns the first blog in input order carrying the maximum
// number of likes. The zero value is returned for an empty list.
func FavoriteBlog(blogs []Blog) FavoriteResult {
	var fav FavoriteResult
	for i, blog := range blogs {
		if i == 0 || blog.Likes > fav.Likes {
			fav = FavoriteResult{Title: blog.Title, Author: blog.Author, Likes: blog.Likes}
		}
	}

	return fav
}

// MostBlogs returns the author with the most blogs. Authors are grouped by
// exact string match; ties go to the author that appeared first in the list.
func MostBlogs(blogs []Blog) AuthorCount {
	counts := make(map[string]int)
	var order []string

	for _, blog := range blogs {
		if _, ok := counts[blog.Author]; !ok {
			order = append(order, blog.Author)
		}
		counts[blog.Author]++
	}

	var top AuthorCount
	for _, author := range order {
		if counts[author] > top.Blogs {
			top = AuthorCount{Author: author, Blogs: counts[author]}
		}
	}

	return top
}

// MostLikes returns the author whose blogs collected the most likes in total,
// with the same grouping, tie and empty-list rules as MostBlogs.
func MostLikes(blogs []Blog) AuthorLikes {
	sums := make(map[string]int)
	var order []string

	for _, blog := range blogs {
		if _, ok := sums[blog.Author]; !ok {
			order = append(order, blog.Author)
		}
		sums[blog.Author] += blog.Likes
	}

	var top AuthorLikes
	for i, author := range order {
		if i == 0 || sums[author] > top.Likes {
			top = AuthorLikes{Author: author, Likes: sums[author]}
		}
	}

	return top
}
