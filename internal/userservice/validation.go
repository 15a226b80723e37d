package userservice

import (
	"github.com/sushihentaime/bloglist/internal/common"
)

func validateUsername(v *common.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(v.CheckStringLength(username, 3, 25), "username", "must be between 3 and 25 characters long")
}

func validateName(v *common.Validator, name string) {
	v.Check(name != "", "name", "must be provided")
}

func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(v.CheckStringLength(password, 3, 72), "password", "must be between 3 and 72 characters long")
}

func ValidateToken(v *common.Validator, token string) {
	v.Check(token != "", "token", "must be provided")
	v.Check(len(token) == 26, "token", "invalid token")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
