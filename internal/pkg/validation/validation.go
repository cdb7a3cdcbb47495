// Package validation wraps go-playground/validator for request payloads.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a validator configured for JSON request structs: reported field
// names come from the json tag, not the Go field name.
func New() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// ErrorMap flattens validation failures into field → message pairs suitable
// for a 400 response body.
func ErrorMap(err error) map[string]string {
	out := map[string]string{}
	ve, ok := err.(validatorv10.ValidationErrors)
	if !ok {
		out["error"] = err.Error()
		return out
	}
	for _, fe := range ve {
		out[fe.Namespace()] = fmt.Sprintf("failed on %q", fe.Tag())
	}
	return out
}
