package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Drive folder IDs are opaque URL-safe tokens. This catches pasted URLs and
// whitespace, the two misconfigurations the diagnostics kept running into.
var folderIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func registerCustomRules(v *validator.Validate) {
	// RegisterValidation only errors on an empty tag or nil func.
	_ = v.RegisterValidation("folderid", func(fl validator.FieldLevel) bool {
		return folderIDPattern.MatchString(fl.Field().String())
	})
}
