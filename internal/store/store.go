// Package store persists each owner's scheduled posts as one JSON array
// under a fixed slot key.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"trendmindAPI/internal/types/post"
)

var (
	// ErrCorruptSlot means the stored bytes are not a JSON array.
	ErrCorruptSlot = errors.New("stored posts are not a JSON array")
	// ErrConflict means the slot changed between read and write.
	ErrConflict = errors.New("post slot was modified concurrently")
	// ErrDuplicateID means a post with the same id is already stored.
	ErrDuplicateID = errors.New("post id already exists")
)

// PostStore is the repository behind the dashboard, calendar and composer.
type PostStore interface {
	// Load returns the owner's valid posts. An absent slot is initialized
	// to an empty array.
	Load(ctx context.Context, owner string) ([]*post.ScheduledPost, error)
	// Append adds p to the owner's slot, failing with ErrConflict if the
	// slot was written by someone else in between.
	Append(ctx context.Context, owner string, p *post.ScheduledPost) error
	// Clear deletes the owner's slot.
	Clear(ctx context.Context, owner string) error
	Ping(ctx context.Context) error
	Close() error
}

var conflictsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "post_store_conflicts_total",
		Help: "Optimistic write conflicts on post slots",
	},
	[]string{"backend"},
)

// Collectors returns the store metrics for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{conflictsTotal}
}

// decodeSlot reads a stored slot. Records that do not validate are
// quarantined: left out of the result, but never dropped from storage.
func decodeSlot(data []byte, logger *zap.Logger, owner string) ([]*post.ScheduledPost, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSlot, err)
	}

	posts := make([]*post.ScheduledPost, 0, len(raw))
	quarantined := 0
	for _, r := range raw {
		var p post.ScheduledPost
		if err := json.Unmarshal(r, &p); err != nil {
			quarantined++
			continue
		}
		if err := p.Validate(); err != nil {
			quarantined++
			continue
		}
		posts = append(posts, &p)
	}

	if quarantined > 0 && logger != nil {
		logger.Warn("quarantined malformed posts",
			zap.String("owner", owner),
			zap.Int("quarantined", quarantined),
			zap.Int("kept", len(posts)),
		)
	}
	return posts, nil
}

// appendToSlot returns the slot bytes with p added at the end. Existing
// records are copied through untouched, malformed ones included.
func appendToSlot(data []byte, p *post.ScheduledPost) ([]byte, error) {
	var raw []json.RawMessage
	if len(data) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSlot, err)
		}
	}

	for _, r := range raw {
		var existing struct {
			ID string `json:"id"`
		}
		if json.Unmarshal(r, &existing) == nil && existing.ID == p.ID {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
	}

	encoded, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal post: %w", err)
	}
	raw = append(raw, encoded)

	out, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal slot: %w", err)
	}
	return out, nil
}

func slotKey(owner string) string {
	return post.StorageKey + ":" + owner
}
