// Package validation checks form input before any mutation is attempted.
package validation

import (
	"reflect"
	"sort"
	"strings"

	"github.com/badoux/checkmail"
	"github.com/go-playground/validator/v10"
)

// Errors maps a form field to its message. A nil Errors means valid.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, ", ")
}

func (e Errors) add(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		return ValidAddress(fl.Field().String())
	})
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		_, ok := parseFinite(fl.Field().String())
		return ok
	})
	return v
}

// Struct runs the tag rules of s and returns field errors, if any.
func Struct(s any) error {
	errs := Errors{}
	structInto(errs, s, nil)
	return errs.orNil()
}

func structInto(errs Errors, s any, messages map[string]string) {
	err := validate.Struct(s)
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.add("_", err.Error())
		return
	}
	for _, fe := range verrs {
		field := fe.Field()
		if msg, ok := messages[field+"."+fe.Tag()]; ok {
			errs.add(field, msg)
			continue
		}
		errs.add(field, describe(fe))
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "mailbox":
		return "Please enter a valid email address"
	case "amount":
		return fe.Field() + " must be a number"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "datetime":
		return fe.Field() + " must be a date (YYYY-MM-DD)"
	case "min":
		return fe.Field() + " must not be empty"
	}
	return fe.Field() + " is invalid"
}

// ValidAddress reports whether s is a single well-formed address with a
// dotted domain.
func ValidAddress(s string) bool {
	s = strings.TrimSpace(s)
	if err := checkmail.ValidateFormat(s); err != nil {
		return false
	}
	at := strings.LastIndex(s, "@")
	domain := s[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// SplitAddresses splits a comma separated list, dropping blanks.
func SplitAddresses(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// InvalidAddresses returns the entries of a comma separated list that are
// not valid addresses.
func InvalidAddresses(list string) []string {
	var bad []string
	for _, addr := range SplitAddresses(list) {
		if !ValidAddress(addr) {
			bad = append(bad, addr)
		}
	}
	return bad
}
