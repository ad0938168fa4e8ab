package config

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/verte-zerg/kanaflow/internal/model"
)

// FieldsError lists invalid settings by field, with readable messages.
type FieldsError struct {
	Fields map[string]string
}

func (f *FieldsError) Error() string {
	keys := make([]string, 0, len(f.Fields))
	for k := range f.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, f.Fields[k])
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Validator checks merged settings.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewValidator returns a Validator with English messages keyed by TOML names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		// Untranslated messages fall back to the raw validator text.
		_ = err
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v, trans: trans}
}

// Validate returns a *FieldsError when cfg holds invalid values.
func (v *Validator) Validate(cfg model.Config) error {
	err := v.validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		fields[e.Namespace()] = e.Translate(v.trans)
	}
	return &FieldsError{Fields: fields}
}
