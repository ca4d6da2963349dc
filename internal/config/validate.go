package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/atarukun/home/internal/timeapi"
)

type validation struct {
	v     *validator.Validate
	trans ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *validation
)

// validatorSvc returns the shared validator, registering the config tags on
// first use.
func validatorSvc() *validation {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// report toml key names
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("toml")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		registerTag(v, trans, "duration", "{0} must be a duration such as 5s or 1h", validDuration)
		registerTag(v, trans, "parser", "{0} must be one of "+strings.Join(timeapi.ParserNames(), ", "), validParser)

		vSvc = &validation{v: v, trans: trans}
	})
	return vSvc
}

func registerTag(v *validator.Validate, trans ut.Translator, tag, text string, fn validator.Func) {
	_ = v.RegisterValidation(tag, fn)
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field())
			return msg
		},
	)
}

// validDuration accepts an empty string (use the default) or a non-negative
// Go duration.
func validDuration(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true
	}
	d, err := time.ParseDuration(s)
	return err == nil && d >= 0
}

func validParser(fl validator.FieldLevel) bool {
	_, err := timeapi.LookupParser(fl.Field().String())
	return err == nil
}

// validate checks raw against its struct tags and joins one translated
// message per failing field.
func validate(raw any) error {
	svc := validatorSvc()
	err := svc.v.Struct(raw)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		return fmt.Errorf("validate config: %w", inv)
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fieldPath(fe), fe.Translate(svc.trans)))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// fieldPath renders the toml path without the root struct name, e.g.
// wifi.adapter or endpoints[1].parser.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		ns = ns[idx+1:]
	}
	return ns
}
