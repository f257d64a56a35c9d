package userservice

import (
	"regexp"

	"github.com/sushihentaime/blogplatform/internal/common"
)

var (
	LoginRX = regexp.MustCompile(`^[a-zA-Z0-9_-]*$`)
)

func init() {
	common.RegisterPattern("login", LoginRX)
}

func validateUserInput(v *common.Validator, in *UserInput) error {
	common.TrimAll(&in.Login, &in.Password, &in.Email)
	return v.CheckStruct(in)
}

func validateLoginInput(v *common.Validator, in *LoginInput) error {
	common.TrimAll(&in.LoginOrEmail, &in.Password)
	return v.CheckStruct(in)
}
