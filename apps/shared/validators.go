package shared

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/apper-canvas/insta-studyhub-auto/core"
	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
	"github.com/apper-canvas/insta-studyhub-auto/core/course"
)

// NewValidator returns a validator knowing every app validation, along with its english translator.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()

	core.InitValidators(validate, translator)
	course.InitValidators(validate, translator)
	assignment.InitValidators(validate, translator)
	return validate, translator
}
