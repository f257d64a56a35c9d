package blogservice

import (
	"regexp"

	"github.com/sushihentaime/blogplatform/internal/common"
)

var (
	WebsiteURLRX = regexp.MustCompile(`^https://([a-zA-Z0-9_-]+\.)*[a-zA-Z0-9_-]+(/[a-zA-Z0-9_-]+)*/?$`)
)

func init() {
	common.RegisterPattern("weburl", WebsiteURLRX)
}

func validateBlogInput(v *common.Validator, in *BlogInput) error {
	common.TrimAll(&in.Name, &in.Description, &in.WebsiteURL)
	return v.CheckStruct(in)
}
