package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// v is the package-level singleton. Boundary request structs (signup,
// verification, login, catalog, subscription) carry validate tags; nothing
// past the handler layer re-validates.
var v = validator.New()

// Struct validates the given struct using its validate tags and flattens
// the failures into one caller-facing message. Field values are never
// echoed back, codes and passwords included.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
