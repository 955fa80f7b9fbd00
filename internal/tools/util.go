package tools

import (
	"path/filepath"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zconst"
)

// AbsolutePathTest rejects relative file paths. Every tool takes absolute
// paths only, so the handlers never depend on the server's working directory.
func AbsolutePathTest() z.Test[*string] {
	return z.TestFunc(zconst.IssueCodeCustom, func(val *string, ctx z.Ctx) bool {
		return filepath.IsAbs(*val)
	})
}
