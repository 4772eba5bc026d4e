package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trendmindAPI/internal/store"
	"trendmindAPI/internal/types/post"
)

// appendAttempts bounds the retries on an optimistic write conflict.
const appendAttempts = 3

type PostService struct {
	store  store.PostStore
	logger *zap.Logger
	newID  func() string
}

func NewPostService(s store.PostStore, logger *zap.Logger) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostService{
		store:  s,
		logger: logger.Named("post_service"),
		newID:  func() string { return uuid.New().String() },
	}
}

// SavePost builds a ScheduledPost from the request and appends it to the
// owner's slot. The title is derived from the topic when not given and an
// empty time defaults to 09:00.
func (s *PostService) SavePost(ctx context.Context, owner string, req *post.CreatePostRequest) (*post.ScheduledPost, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		if strings.TrimSpace(req.Topic) == "" {
			return nil, fmt.Errorf("%w: topic or title is required", ErrInvalidPost)
		}
		title = post.TitleFromTopic(req.Topic)
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidPost)
	}

	scheduled := &post.ScheduledPost{
		ID:      s.newID(),
		Title:   title,
		Content: req.Content,
		Date:    strings.TrimSpace(req.Date),
		Time:    strings.TrimSpace(req.Time),
		Type:    req.Type,
	}
	if scheduled.Time == "" {
		scheduled.Time = post.DefaultTime
	}
	if err := scheduled.Validate(); err != nil {
		return nil, err
	}

	if err := s.appendWithRetry(ctx, owner, scheduled); err != nil {
		return nil, err
	}

	s.logger.Info("post saved",
		zap.String("owner", owner),
		zap.String("post_id", scheduled.ID),
		zap.String("date", scheduled.Date),
		zap.String("time", scheduled.Time),
	)
	return scheduled, nil
}

func (s *PostService) appendWithRetry(ctx context.Context, owner string, p *post.ScheduledPost) error {
	var err error
	for attempt := 1; attempt <= appendAttempts; attempt++ {
		err = s.store.Append(ctx, owner, p)
		if !errors.Is(err, store.ErrConflict) {
			break
		}
		s.logger.Warn("post slot conflict, retrying",
			zap.String("owner", owner),
			zap.Int("attempt", attempt),
		)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	if err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	return nil
}

// ListPosts returns every valid post sorted by (date, time).
func (s *PostService) ListPosts(ctx context.Context, owner string) ([]*post.ScheduledPost, error) {
	posts, err := s.store.Load(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	post.SortBySchedule(posts)
	return posts, nil
}

// Upcoming returns the first n posts in schedule order and the total count.
func (s *PostService) Upcoming(ctx context.Context, owner string, n int) ([]*post.ScheduledPost, int, error) {
	posts, err := s.ListPosts(ctx, owner)
	if err != nil {
		return nil, 0, err
	}
	total := len(posts)
	if n >= 0 && n < total {
		posts = posts[:n]
	}
	return posts, total, nil
}

// ClearPosts wipes the owner's slot.
func (s *PostService) ClearPosts(ctx context.Context, owner string) error {
	if err := s.store.Clear(ctx, owner); err != nil {
		return fmt.Errorf("failed to clear posts: %w", err)
	}
	s.logger.Info("posts cleared", zap.String("owner", owner))
	return nil
}
