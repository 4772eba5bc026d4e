package services

import (
	"errors"

	"trendmindAPI/internal/types/post"
)

var (
	ErrInvalidPost  = post.ErrInvalidPost
	ErrInvalidQuery = errors.New("invalid query")
	ErrTopicMissing = errors.New("topic is required")

	ErrInvalidProfile = errors.New("invalid profile")
)
