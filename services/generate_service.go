package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	ctypes "trendmindAPI/internal/types/composer"
	"trendmindAPI/internal/types/post"
)

// Composer is the generation backend the service drives.
type Composer interface {
	Generate(ctx context.Context, req ctypes.GenerateRequest) ctypes.GenerateResult
}

type GenerateService struct {
	composer Composer
	posts    *PostService
	logger   *zap.Logger
}

func NewGenerateService(composer Composer, posts *PostService, logger *zap.Logger) *GenerateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerateService{
		composer: composer,
		posts:    posts,
		logger:   logger.Named("generate_service"),
	}
}

// WithDefaults fills empty form fields with the generate page defaults.
func WithDefaults(req ctypes.GenerateRequest) ctypes.GenerateRequest {
	if strings.TrimSpace(req.ContentType) == "" {
		req.ContentType = ctypes.DefaultContentType
	}
	if strings.TrimSpace(req.Industry) == "" {
		req.Industry = ctypes.DefaultIndustry
	}
	if strings.TrimSpace(req.Tone) == "" {
		req.Tone = ctypes.DefaultTone
	}
	return req
}

// Generate composes one post. An empty topic is rejected before any call
// is made.
func (s *GenerateService) Generate(ctx context.Context, req ctypes.GenerateRequest) (ctypes.GenerateResult, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return ctypes.GenerateResult{}, ErrTopicMissing
	}
	return s.composer.Generate(ctx, WithDefaults(req)), nil
}

// GenerateAndSave composes a post and appends it to the owner's calendar
// only when the model produced text. The saved post is nil otherwise. When
// the save itself fails the generated result is still returned with the
// error.
func (s *GenerateService) GenerateAndSave(ctx context.Context, owner string, req *ctypes.GenerateAndSaveRequest) (ctypes.GenerateResult, *post.ScheduledPost, error) {
	date := strings.TrimSpace(req.Date)
	clock := strings.TrimSpace(req.Time)
	if !post.ValidDate(date) {
		return ctypes.GenerateResult{}, nil, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidPost, req.Date)
	}
	if clock != "" && !post.ValidTime(clock) {
		return ctypes.GenerateResult{}, nil, fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidPost, req.Time)
	}

	result, err := s.Generate(ctx, req.GenerateRequest)
	if err != nil {
		return result, nil, err
	}
	if !result.Success || result.Content == ctypes.FallbackContent {
		return result, nil, nil
	}

	saved, err := s.posts.SavePost(ctx, owner, &post.CreatePostRequest{
		Topic:   req.Topic,
		Content: result.Content,
		Date:    date,
		Time:    clock,
		Type:    WithDefaults(req.GenerateRequest).ContentType,
	})
	if err != nil {
		s.logger.Warn("generated post not saved", zap.String("owner", owner), zap.Error(err))
		return result, nil, err
	}
	return result, saved, nil
}
