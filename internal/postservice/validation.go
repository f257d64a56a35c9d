package postservice

import (
	"context"

	"github.com/sushihentaime/blogplatform/internal/common"
)

func normalizeContent(in *PostContent) {
	common.TrimAll(&in.Title, &in.ShortDescription, &in.Content)
}

func validatePostContent(v *common.Validator, in *PostContent) error {
	normalizeContent(in)
	return v.CheckStruct(in)
}

// validatePostInput runs the field rules first and then resolves blogId
// against the blog store. The lookup is skipped when blogId already failed.
func validatePostInput(ctx context.Context, v *common.Validator, blogs BlogLookup, in *PostInput) error {
	normalizeContent(&in.PostContent)
	common.TrimAll(&in.BlogID)
	if err := v.CheckStruct(in); err != nil {
		return err
	}

	if v.Failed("blogId") {
		return nil
	}

	ok, err := blogs.BlogExists(ctx, in.BlogID)
	if err != nil {
		return err
	}
	v.Check(ok, "blogId", common.IncorrectMessage("blogId"))

	return nil
}
