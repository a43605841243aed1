package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags & texts
	notBlankTag  = "notblank"
	notBlankText = "this field cannot be blank"
	isoDateTag   = "isodate"
	isoDateText  = "{0} must be a date in YYYY-MM-DD format"
	nisTag       = "nis"
	nisText      = "{0} may only contain digits"
	nisRegex     = regexp.MustCompile(`^[0-9]+$`)

	requiredText = "this field is required"
)

// FieldValidator is implemented by inputs with rules that tags cannot express,
// such as fields required only when another field has a given value.
type FieldValidator interface {
	ValidateFields() map[string]string
}

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = Validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = Validate.RegisterValidation(isoDateTag, isoDateValidation)
	_ = Validate.RegisterValidation(nisTag, nisValidation)

	registerCustomTranslation(notBlankTag, notBlankText, false)
	registerCustomTranslation(isoDateTag, isoDateText, false)
	registerCustomTranslation(nisTag, nisText, false)
	registerCustomTranslation("required", requiredText, true)
	registerCustomTranslation("required_with", requiredText, true)
}

func registerCustomTranslation(tag, text string, override bool) {
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct validates v and returns field -> message, or nil when v is valid.
func Struct(v any) map[string]string {
	fields := map[string]string{}
	if err := Validate.Struct(v); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, fe := range validationErrors {
				if _, seen := fields[fe.Field()]; !seen {
					fields[fe.Field()] = fe.Translate(Translator)
				}
			}
		} else {
			fields["_"] = err.Error()
		}
	}
	if fv, ok := v.(FieldValidator); ok {
		for field, msg := range fv.ValidateFields() {
			if _, seen := fields[field]; !seen {
				fields[field] = msg
			}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// FormatValidationError flattens binding errors into one line for simple handlers.
func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fe := range validationErrors {
			messages = append(messages, fe.Translate(Translator))
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

// Custom Validators

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func isoDateValidation(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func nisValidation(fl validator.FieldLevel) bool {
	return nisRegex.MatchString(fl.Field().String())
}
