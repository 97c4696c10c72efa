package validator

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ParseError flattens binding errors into field -> message. Non-validation
// errors are reported under "error".
func ParseError(err error) map[string]string {
	out := make(map[string]string)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[SnakeCase(fe.Field())] = message(fe)
		}
	} else if err != nil {
		out["error"] = err.Error()
	}
	return out
}

func message(fe validator.FieldError) string {
	field := SnakeCase(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s.", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s field must not exceed %s.", field, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s field must be %s or more.", field, fe.Param())
	case "lte":
		return fmt.Sprintf("The %s field must be %s or less.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s.", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "datetime":
		return fmt.Sprintf("The %s field must match the layout %s.", field, fe.Param())
	default:
		return fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", field, fe.Tag())
	}
}

// SnakeCase converts a Go field name such as "Team1ID" to "team1_id".
func SnakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
