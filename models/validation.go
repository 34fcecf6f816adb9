package models

import (
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/leebenson/conform"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
	trans        ut.Translator
)

func setupValidator() {
	validate = validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ = uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
}

// ValidateStruct trims the request's tagged strings in place and validates it.
// The returned messages are in plain English, one per failing field.
func ValidateStruct(req interface{}) []string {
	validateOnce.Do(setupValidator)

	if err := conform.Strings(req); err != nil {
		return []string{err.Error()}
	}
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		msgs = append(msgs, e.Translate(trans))
	}
	return msgs
}

// JoinValidation renders ValidateStruct output as a single message.
func JoinValidation(msgs []string) string {
	return strings.Join(msgs, "; ")
}
