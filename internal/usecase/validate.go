package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/nextelligentia/leadops/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields the way API clients spell them: FirstName -> firstName
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		r := []rune(f.Name)
		r[0] = unicode.ToLower(r[0])
		return string(r)
	})
	return v
}

// fieldMessages maps "field.tag" (or just "field") to a human-readable
// message. Errors on slice elements try "field[].tag" and "field[]" first.
type fieldMessages map[string]string

func validateInput(input any, msgs fieldMessages) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := &domain.ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		field, keys := fe.Field(), []string(nil)
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
			// element errors from dive: "services[].required", "services[]"
			keys = append(keys, field+"[]."+fe.Tag(), field+"[]")
		}
		if _, seen := out.Fields[field]; seen {
			continue
		}
		keys = append(keys, field+"."+fe.Tag(), field)

		msg := fmt.Sprintf("%s is invalid", field)
		for _, k := range keys {
			if m := msgs[k]; m != "" {
				msg = m
				break
			}
		}
		out.Fields[field] = msg
	}
	return out
}

func trimAll(ss []string) []string {
	if ss == nil {
		return nil
	}
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
