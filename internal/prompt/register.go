package prompt

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-storefront/pkg/api"
)

var errRequired = errors.New("this field is required")

func required(value string) error {
	if strings.TrimSpace(value) == "" {
		return errRequired
	}
	return nil
}

// AskRegistration collects the sign-up form.
func AskRegistration(ctx context.Context, driver Driver) (api.Registration, error) {
	var r api.Registration
	inputs := []struct {
		message string
		dest    *string
	}{
		{"Full name", &r.FullName},
		{"Email", &r.Email},
		{"Phone", &r.Phone},
	}
	for _, in := range inputs {
		value, err := driver.Input(ctx, InputConfig{Message: in.message, Validator: required})
		if err != nil {
			return api.Registration{}, err
		}
		*in.dest = strings.TrimSpace(value)
	}

	var err error
	if r.Password, err = driver.Password(ctx, InputConfig{Message: "Password", Validator: required}); err != nil {
		return api.Registration{}, err
	}
	if r.Password2, err = driver.Password(ctx, InputConfig{Message: "Confirm password", Validator: required}); err != nil {
		return api.Registration{}, err
	}
	return r, nil
}
