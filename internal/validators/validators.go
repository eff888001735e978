package validators

import (
	"encoding/json"
	"errors"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/timezone"
)

var (
	Translator ut.Translator

	once sync.Once

	// custom validation tags
	notBlankTag      = "notblank"
	sessionStatusTag = "session_status"
	timezoneTag      = "timezone"
	percentageTag    = "percentage"
	optionalURLTag   = "optional_url"
)

var sessionStatuses = map[string]bool{
	"scheduled":   true,
	"in_progress": true,
	"completed":   true,
	"cancelled":   true,
	"no_show":     true,
}

// Setup configures gin's validator: JSON field names, english messages and
// the custom tags. Safe to call more than once.
func Setup() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		_en := en.New()
		uni := ut.New(_en, _en)
		Translator, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, Translator)

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})

		_ = v.RegisterValidation(notBlankTag, notBlank)
		_ = v.RegisterValidation(sessionStatusTag, sessionStatus)
		_ = v.RegisterValidation(timezoneTag, validTimezone)
		_ = v.RegisterValidation(percentageTag, percentage)
		_ = v.RegisterValidation(optionalURLTag, optionalURL)

		registerFn := func(ut.Translator) error { return nil }
		for _, tag := range []string{notBlankTag, sessionStatusTag, timezoneTag, percentageTag, optionalURLTag} {
			_ = v.RegisterTranslation(tag, Translator, registerFn, translateCustom)
		}
	})
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return "this field cannot be blank"
	case sessionStatusTag:
		return "must be one of scheduled, in_progress, completed, cancelled, no_show"
	case timezoneTag:
		return "must be an IANA time zone"
	case percentageTag:
		return "must be between 0 and 100"
	case optionalURLTag:
		return "must be an absolute URL or empty"
	default:
		return ""
	}
}

func notBlank(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func sessionStatus(fl validator.FieldLevel) bool {
	return sessionStatuses[fl.Field().String()]
}

func validTimezone(fl validator.FieldLevel) bool {
	return timezone.IsValid(fl.Field().String())
}

// optionalURL accepts an empty string, which clears the value, or an
// absolute URL with a host.
func optionalURL(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func percentage(fl validator.FieldLevel) bool {
	n := fl.Field().Int()
	return n >= 0 && n <= 100
}

// BindError turns a gin bind failure into a 400 with per-field messages.
func BindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			msg := fe.Error()
			if Translator != nil {
				msg = fe.Translate(Translator)
			}
			fields[fe.Field()] = msg
		}
		return httperr.Validation("validation_failed", "Some fields are invalid.", fields)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return httperr.Validation("invalid_payload", "Invalid request body.", map[string]string{
			typeErr.Field: "has the wrong type",
		})
	}

	return httperr.Validation("invalid_payload", "Invalid request body.", nil)
}
