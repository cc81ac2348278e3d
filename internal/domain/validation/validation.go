package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"-"`
	Message string `json:"message"`
}

// Error is returned for input that fails validation. Handlers map it to 400.
type Error struct {
	Fields  []FieldError
	message string
}

func (e *Error) Error() string {
	if e.message != "" {
		return e.message
	}
	return summarize(e.Fields)
}

func New(message string) *Error {
	return &Error{message: message}
}

func Field(field, message string) *Error {
	return &Error{Fields: []FieldError{{Field: field, Message: message}}, message: message}
}

func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

var (
	once       sync.Once
	validate   *validator.Validate
	translator ut.Translator
)

func engine() (*validator.Validate, ut.Translator) {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})

		english := en.New()
		translator, _ = ut.New(english, english).GetTranslator("en")
		_ = entranslations.RegisterDefaultTranslations(validate, translator)
	})
	return validate, translator
}

// Struct validates v against its `validate` tags.
func Struct(v any) error {
	v8, trans := engine()
	err := v8.Struct(v)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return err
	}

	fields := make([]FieldError, 0, len(invalid))
	for _, fe := range invalid {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: fe.Translate(trans),
		})
	}
	return &Error{Fields: fields}
}

func summarize(fields []FieldError) string {
	if len(fields) == 0 {
		return "validation failed"
	}

	var missing []string
	var messages []string
	for _, f := range fields {
		if f.Tag == "required" {
			missing = append(missing, f.Field)
			continue
		}
		messages = append(messages, f.Message)
	}

	if len(messages) == 0 {
		return "Missing required fields: " + strings.Join(missing, ", ")
	}
	if len(missing) > 0 {
		messages = append([]string{"Missing required fields: " + strings.Join(missing, ", ")}, messages...)
	}
	return strings.Join(messages, "; ")
}
