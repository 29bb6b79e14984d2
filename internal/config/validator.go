package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	melodramaerrors "github.com/melodrama/melodrama/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Validate checks the effective settings.
func Validate(s *Settings) error {
	if s == nil {
		return melodramaerrors.NewValidationError("settings", "settings are nil", nil)
	}

	if err := validatorInstance().Struct(s); err != nil {
		return convertValidationError(err)
	}

	if s.RegistryTimeout < 0 {
		return melodramaerrors.NewValidationError("settings.registry_timeout", "must not be negative", nil)
	}

	for i, dir := range s.Include {
		if strings.TrimSpace(dir) == "" {
			return melodramaerrors.NewValidationError(fmt.Sprintf("settings.include[%d]", i), "must not be empty", nil)
		}
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return melodramaerrors.NewValidationError(field, msg, err)
	}

	return melodramaerrors.NewValidationError("settings", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}
