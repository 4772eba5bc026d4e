package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"trendmindAPI/internal/calendar"
	"trendmindAPI/internal/store"
	caltypes "trendmindAPI/internal/types/calendar"
	"trendmindAPI/internal/types/post"
)

type CalendarService struct {
	store  store.PostStore
	logger *zap.Logger
	now    func() time.Time
}

func NewCalendarService(s store.PostStore, logger *zap.Logger) *CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{
		store:  s,
		logger: logger.Named("calendar_service"),
		now:    time.Now,
	}
}

type CalendarQuery struct {
	View caltypes.ViewMode
	// Date is the reference date as YYYY-MM-DD; empty means today.
	Date string
	Nav  caltypes.Navigation
}

// GetCalendar resolves the reference date, applies navigation and lays out
// the owner's posts for the requested view.
func (s *CalendarService) GetCalendar(ctx context.Context, owner string, q CalendarQuery) (*caltypes.CalendarResponse, error) {
	view := q.View
	if view == "" {
		view = caltypes.ViewMonth
	}
	if view != caltypes.ViewMonth && view != caltypes.ViewWeek {
		return nil, fmt.Errorf("%w: unknown view %q", ErrInvalidQuery, view)
	}
	switch q.Nav {
	case caltypes.NavNone, caltypes.NavNext, caltypes.NavPrev, caltypes.NavToday:
	default:
		return nil, fmt.Errorf("%w: unknown navigation %q", ErrInvalidQuery, q.Nav)
	}

	now := s.now()
	ref := calendar.DayOf(now)
	if q.Date != "" {
		d, err := calendar.ParseDate(q.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
		ref = d
	}
	ref = calendar.Navigate(ref, view, q.Nav, now)

	posts, err := s.store.Load(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	post.SortBySchedule(posts)

	resp := &caltypes.CalendarResponse{
		View:      view,
		Reference: ref.Format(post.DateLayout),
	}
	if view == caltypes.ViewWeek {
		resp.Week = calendar.BuildWeek(ref, now, posts)
	} else {
		resp.Month = calendar.BuildMonth(ref, now, posts)
	}
	return resp, nil
}
