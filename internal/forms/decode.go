package forms

import (
	"fmt"
	"html"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-playground/form"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// DateLayout is the calendar-date format used by date inputs.
const DateLayout = "2006-01-02"

var (
	decoder  = newDecoder()
	validate = newValidator()

	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// cleaner is implemented by inputs that normalise values after decoding.
type cleaner interface {
	clean()
}

func newDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		if len(vals) == 0 {
			return time.Time{}, nil
		}
		raw := strings.TrimSpace(vals[0])
		if raw == "" {
			return time.Time{}, nil
		}
		return time.Parse(DateLayout, raw)
	}, time.Time{})
	return d
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// sanitizeText strips markup from free text. Values are stored unescaped and
// escaped again when rendered.
func sanitizeText(raw string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(strings.TrimSpace(raw))))
}

func decodeMessage(field *Field) string {
	if field == nil {
		return msgInvalidValue
	}
	switch field.Widget {
	case WidgetNumber:
		return "Enter a whole number."
	case WidgetDate:
		return "Enter a valid date."
	default:
		return msgInvalidValue
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "max":
		if s, ok := fe.Value().(string); ok {
			return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), utf8.RuneCountInString(s))
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "gte", "min":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	default:
		return msgInvalidValue
	}
}

func formatDate(t *time.Time) string {
	return t.Format(DateLayout)
}

func datePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
