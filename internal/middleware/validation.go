package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/medrec-api/internal/model"
)

// RegisterValidations hooks domain rules into gin's binding validator and
// makes validation errors report JSON field names instead of Go ones.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	if err := v.RegisterValidation("role", validRole); err != nil {
		panic(err)
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// validRole accepts any recognized role. Whether the caller may register
// that role is a service decision, not a shape check.
func validRole(fl validator.FieldLevel) bool {
	return model.Role(fl.Field().String()).Valid()
}
