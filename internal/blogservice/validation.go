package blogservice

import (
	"github.com/sushihentaime/bloglist/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 200), "title", "must not be more than 200 characters long")
}

func validateAuthor(v *common.Validator, author string) {
	v.Check(author != "", "author", "must be provided")
}

func validateLikes(v *common.Validator, likes int) {
	v.Check(likes >= 0, "likes", "must not be negative")
}

func validateComment(v *common.Validator, comment string) {
	v.Check(comment != "", "comment", "must be provided")
	v.Check(v.CheckStringLength(comment, 1, 1000), "comment", "must not be more than 1000 characters long")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
