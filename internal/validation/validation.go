// Package validation wraps go-playground/validator with the input rules of the
// job board and converts its errors into apperror.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"findjob-backend/internal/apperror"

	"github.com/go-playground/validator/v10"
)

var (
	usernameRe  = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	cvLinkRe    = regexp.MustCompile(`(?i)^https?://\S+\.(pdf|doc|docx)$`)
	dangerousRe = regexp.MustCompile(`(?i)<\s*(script|iframe|embed|object|link|style)[^>]*>`)
)

// Validator checks request structs against their `validate` tags.
type Validator struct {
	v *validator.Validate
}

var std = New()

// New build a Validator with every custom tag registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "nospace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
	})
	mustRegister(v, "noemoji", func(fl validator.FieldLevel) bool {
		return !ContainsEmoji(fl.Field().String())
	})
	mustRegister(v, "username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "cvlink", func(fl validator.FieldLevel) bool {
		return cvLinkRe.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister(v, "safe_html", func(fl validator.FieldLevel) bool {
		return !dangerousRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validator: %v", tag, err))
	}
}

// Struct validates s with the package default Validator.
func Struct(s any) error {
	return std.Struct(s)
}

// Struct validates s. Violations come back as *apperror.ValidationError with
// one entry per failing field, named after its json key.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &apperror.ValidationError{}
	for _, fe := range verrs {
		out.Add(fieldPath(fe), fieldError(fe))
	}
	return out.OrNil()
}

// fieldPath drop the top-level struct name from the namespace so nested
// fields read as "coordinates.latitude".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "must not be empty"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "nospace":
		return "must not contain whitespace"
	case "noemoji":
		return "must not contain emoji"
	case "username":
		return "may only contain letters, digits and underscore"
	case "cvlink":
		return "must be an http(s) link to a .pdf, .doc or .docx file"
	case "safe_html":
		return "contains forbidden HTML tags"
	case "latitude":
		return "must be between -90 and 90"
	case "longitude":
		return "must be between -180 and 180"
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
