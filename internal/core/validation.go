// AngelaMos | 2026
// validation.go

package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// filled is required for pointer fields: a present pointer must not
	// point at the zero value.
	_ = v.RegisterValidation("filled", func(fl validator.FieldLevel) bool {
		return !fl.Field().IsZero()
	})

	return v
}

// Validate checks v against its validate tags and reports only the first
// failing field as a 422 AppError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return ValidationError(FormatValidationError(err))
	}

	return fmt.Errorf("validate: %w", err)
}

func FormatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "The given data was invalid."
	}

	fe := verrs[0]
	field := humanizeField(fe.Field())

	switch fe.Tag() {
	case "required", "filled":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "max":
		return fmt.Sprintf(
			"The %s field must not be greater than %s characters.",
			field,
			fe.Param(),
		)
	case "min":
		return fmt.Sprintf(
			"The %s field must be at least %s characters.",
			field,
			fe.Param(),
		)
	case "uuid", "uuid4":
		return fmt.Sprintf("The %s field must be a valid UUID.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

// DecodeJSON reads a JSON request body into dst. An empty body decodes
// as an empty object. An explicit null for a field tagged filled is
// rejected as missing rather than treated as absent.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return NewAppError(ErrInvalidInput, "invalid request body", http.StatusBadRequest)
	}

	err = json.NewDecoder(bytes.NewReader(data)).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		return rejectExplicitNulls(data, dst)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return ValidationError(fmt.Sprintf(
			"The %s field must be a %s.",
			humanizeField(typeErr.Field),
			jsonKind(typeErr.Type),
		))
	}

	return NewAppError(ErrInvalidInput, "invalid request body", http.StatusBadRequest)
}

func rejectExplicitNulls(data []byte, dst any) error {
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil //nolint:nilerr // non-object bodies were already decoded into dst
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if f.Type.Kind() != reflect.Pointer || !hasRule(f.Tag.Get("validate"), "filled") {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		if raw, ok := fields[name]; ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return ValidationError(fmt.Sprintf("The %s field is required.", humanizeField(name)))
		}
	}

	return nil
}

func hasRule(tag, rule string) bool {
	for _, r := range strings.Split(tag, ",") {
		if r == rule {
			return true
		}
	}
	return false
}

func humanizeField(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.ReplaceAll(name, "_", " ")
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "valid value"
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}
