package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"trendmindAPI/internal/identity"
	idtypes "trendmindAPI/internal/types/identity"
)

type UserService struct {
	provider identity.Provider
	posts    *PostService
	logger   *zap.Logger
}

func NewUserService(provider identity.Provider, posts *PostService, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		provider: provider,
		posts:    posts,
		logger:   logger.Named("user_service"),
	}
}

func (s *UserService) GetCurrentUser(ctx context.Context, userID string) (*idtypes.CurrentUser, error) {
	return s.provider.GetUser(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *idtypes.UpdateProfileRequest) (*idtypes.CurrentUser, error) {
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	if first == "" && last == "" {
		return nil, fmt.Errorf("%w: first or last name is required", ErrInvalidProfile)
	}
	return s.provider.UpdateName(ctx, userID, first, last)
}

// DeleteAccount removes the user at the identity provider, then wipes
// their posts. The slot is kept if the provider refuses the deletion.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.provider.DeleteUser(ctx, userID); err != nil {
		return err
	}
	if err := s.posts.ClearPosts(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("account deleted", zap.String("user_id", userID))
	return nil
}

// HandleUserDeleted reacts to a deletion made outside this service, such
// as from the provider's dashboard.
func (s *UserService) HandleUserDeleted(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidProfile)
	}
	return s.posts.ClearPosts(ctx, userID)
}
