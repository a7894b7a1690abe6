// pattern: Imperative Shell

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate is shared: validator caches struct metadata internally.
var validate = validator.New()

// ListUsers fetches all user accounts. Pass a cancellable context:
// the users screen aborts the fetch on teardown.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRoles fetches the assignable role names.
func (c *Client) ListRoles(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/api/users/roles", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser validates the request locally and creates the account.
// Validation failures never reach the wire.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) error {
	if err := ValidateUser(req); err != nil {
		return err
	}
	if err := c.do(ctx, http.MethodPost, "/api/users", req, nil); err != nil {
		return err
	}
	c.logger.Info("user created", "email", req.Email, "roles", req.Roles)
	return nil
}

// ValidateUser checks a create-user request and returns a message
// suitable for inline display next to the offending field.
func ValidateUser(req CreateUserRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return fmt.Errorf("%s", userValidationMessage(verrs[0]))
}

// userValidationMessage maps the first failed rule to user-facing text.
func userValidationMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		return "name is required"
	case "Email":
		if fe.Tag() == "email" {
			return "email address is not valid"
		}
		return "email is required"
	case "Password":
		if fe.Tag() == "min" {
			return "password needs at least 8 characters"
		}
		return "password is required"
	case "Roles":
		return "pick at least one role"
	}
	return "invalid input"
}
