package validator

import (
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// trans is the singleton English translator for validation errors.
var trans ut.Translator

// Setup registers the validator with English translations on Gin's binding engine.
// Call once during application startup.
func Setup() {
	v, ok := binding.Validator.Engine().(*govalidator.Validate)
	if !ok {
		return
	}

	// Use the json tag, or the form tag for query structs, as the field name.
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

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	// Missing fields read "<field> is required".
	_ = v.RegisterTranslation("required", trans,
		func(t ut.Translator) error {
			return t.Add("required", "{0} is required", true)
		},
		func(t ut.Translator, fe govalidator.FieldError) string {
			msg, _ := t.T("required", fieldName(fe))
			return msg
		},
	)
}

// Fields that carry a decode error instead of a rejected value.
const (
	FieldBody  = "body"
	FieldQuery = "query"
)

// FieldError is one rejected field.
type FieldError struct {
	Field   string
	Message string
}

// Errors lists every rejected field of a request, in declaration order.
type Errors []FieldError

// Map returns field name → message.
func (e Errors) Map() map[string]string {
	fields := make(map[string]string, len(e))
	for _, fe := range e {
		fields[fe.Field] = fe.Message
	}
	return fields
}

// Error joins every message.
func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, ", ")
}

// Malformed reports whether the request could not be decoded at all, as
// opposed to decoding into values that failed validation.
func (e Errors) Malformed() bool {
	for _, fe := range e {
		if fe.Field == FieldBody || fe.Field == FieldQuery {
			return true
		}
	}
	return false
}

// TranslateErrors turns a binding/validation error into field errors. If the
// error is not a validation error, a single "body" entry carries its text.
func TranslateErrors(err error) Errors {
	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		out := make(Errors, 0, len(ve))
		for _, fe := range ve {
			msg := fe.Error()
			if trans != nil {
				msg = fe.Translate(trans)
			}
			out = append(out, FieldError{Field: fieldName(fe), Message: msg})
		}
		return out
	}

	// Not a validation error (e.g., JSON syntax error).
	return Errors{{Field: FieldBody, Message: err.Error()}}
}

// fieldName is the dotted path below the top-level struct, e.g. "user.email".
func fieldName(fe govalidator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// Bind binds and validates the request body into dst.
// Returns nil on success or every field error on failure. An empty body is
// treated as an object with every field missing.
func Bind(c *gin.Context, dst any) Errors {
	err := c.ShouldBindJSON(dst)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(dst)
	}
	if err != nil {
		return TranslateErrors(err)
	}
	return nil
}

// BindQuery binds and validates the query string into dst.
//
// An unparseable value such as limit=abc stops binding, so dst is then
// validated as far as it got: keys present in the query are skipped and the
// parse error is appended as a "query" entry.
func BindQuery(c *gin.Context, dst any) Errors {
	err := c.ShouldBindQuery(dst)
	if err == nil {
		return nil
	}

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		return TranslateErrors(err)
	}

	present := c.Request.URL.Query()
	var out Errors
	if verr := binding.Validator.ValidateStruct(dst); verr != nil {
		for _, fe := range TranslateErrors(verr) {
			if _, ok := present[fe.Field]; ok || fe.Field == FieldBody {
				continue
			}
			out = append(out, fe)
		}
	}
	return append(out, FieldError{Field: FieldQuery, Message: err.Error()})
}
