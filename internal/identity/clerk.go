// Package identity talks to Clerk, the hosted identity provider. Sign-in,
// sign-up and OAuth happen in Clerk's UI; this side only reads, updates and
// deletes the signed-in user.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/user"

	idtypes "trendmindAPI/internal/types/identity"
)

// Provider is the slice of the identity provider the service depends on.
type Provider interface {
	GetUser(ctx context.Context, userID string) (*idtypes.CurrentUser, error)
	UpdateName(ctx context.Context, userID, firstName, lastName string) (*idtypes.CurrentUser, error)
	DeleteUser(ctx context.Context, userID string) error
}

// ProviderError carries the provider's own message so it can be shown to
// the user unmodified.
type ProviderError struct {
	Status  int
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

type ClerkProvider struct {
	users *user.Client
}

// NewClerkProvider builds a provider with its own Clerk backend client.
// baseURL may be empty to use Clerk's API.
func NewClerkProvider(secretKey, baseURL string) *ClerkProvider {
	cfg := &clerk.ClientConfig{}
	cfg.Key = clerk.String(secretKey)
	if baseURL != "" {
		cfg.URL = clerk.String(baseURL)
	}
	return &ClerkProvider{users: user.NewClient(cfg)}
}

func (p *ClerkProvider) GetUser(ctx context.Context, userID string) (*idtypes.CurrentUser, error) {
	u, err := p.users.Get(ctx, userID)
	if err != nil {
		return nil, wrapClerkError("get user", err)
	}
	return toCurrentUser(u), nil
}

func (p *ClerkProvider) UpdateName(ctx context.Context, userID, firstName, lastName string) (*idtypes.CurrentUser, error) {
	u, err := p.users.Update(ctx, userID, &user.UpdateParams{
		FirstName: clerk.String(firstName),
		LastName:  clerk.String(lastName),
	})
	if err != nil {
		return nil, wrapClerkError("update user", err)
	}
	return toCurrentUser(u), nil
}

func (p *ClerkProvider) DeleteUser(ctx context.Context, userID string) error {
	if _, err := p.users.Delete(ctx, userID); err != nil {
		return wrapClerkError("delete user", err)
	}
	return nil
}

func toCurrentUser(u *clerk.User) *idtypes.CurrentUser {
	cu := &idtypes.CurrentUser{
		ID:        u.ID,
		FirstName: deref(u.FirstName),
		LastName:  deref(u.LastName),
		AvatarURL: deref(u.ImageURL),
	}

	primary := deref(u.PrimaryEmailAddressID)
	for _, e := range u.EmailAddresses {
		if e == nil {
			continue
		}
		if cu.Email == "" || e.ID == primary {
			cu.Email = e.EmailAddress
		}
	}

	cu.DisplayName = DisplayName(cu.FirstName, cu.LastName)
	return cu
}

// DisplayName joins the name parts, falling back to a generic label.
func DisplayName(firstName, lastName string) string {
	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if name == "" {
		return idtypes.DefaultDisplayName
	}
	return name
}

func wrapClerkError(op string, err error) error {
	var apiErr *clerk.APIErrorResponse
	if errors.As(err, &apiErr) {
		msg := ""
		if len(apiErr.Errors) > 0 {
			msg = apiErr.Errors[0].LongMessage
			if msg == "" {
				msg = apiErr.Errors[0].Message
			}
		}
		if msg == "" {
			msg = fmt.Sprintf("%s failed", op)
		}
		return &ProviderError{Status: apiErr.HTTPStatusCode, Message: msg, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
