// Package calendar lays out scheduled posts on month and week grids.
// Weeks start on Sunday and every date is handled at UTC midnight, so
// daylight-saving transitions never move a cell.
package calendar

import (
	"fmt"
	"time"

	caltypes "trendmindAPI/internal/types/calendar"
	"trendmindAPI/internal/types/post"
)

// RowHeight is the pixel height of one hour row in the week view.
const RowHeight = 64

// DayOf truncates t to its calendar date at UTC midnight.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string. Out-of-range days are rejected.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(post.DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

func StartOfWeek(t time.Time) time.Time {
	d := DayOf(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}

// BuildMonth returns the rectangular grid covering ref's month: from the
// Sunday on or before the 1st to the Saturday on or after the last day.
func BuildMonth(ref, today time.Time, posts []*post.ScheduledPost) *caltypes.MonthGrid {
	ref = DayOf(ref)
	monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	start := StartOfWeek(monthStart)
	end := EndOfWeek(monthEnd)

	byDate := bucketByDate(posts)
	todayKey := DayOf(today).Format(post.DateLayout)

	grid := &caltypes.MonthGrid{
		Year:  monthStart.Year(),
		Month: int(monthStart.Month()),
		Label: monthStart.Format("January 2006"),
		Start: start.Format(post.DateLayout),
		End:   end.Format(post.DateLayout),
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(post.DateLayout)
		grid.Days = append(grid.Days, &caltypes.CalendarDay{
			Date:    key,
			Weekday: int(d.Weekday()),
			InMonth: d.Month() == monthStart.Month(),
			IsToday: key == todayKey,
			Posts:   nonNil(byDate[key]),
		})
	}
	return grid
}

// BuildWeek returns the seven days of ref's week and an absolutely
// positioned slot for every post scheduled inside it.
func BuildWeek(ref, today time.Time, posts []*post.ScheduledPost) *caltypes.WeekGrid {
	start := StartOfWeek(ref)
	end := start.AddDate(0, 0, 6)

	byDate := bucketByDate(posts)
	todayKey := DayOf(today).Format(post.DateLayout)

	grid := &caltypes.WeekGrid{
		Label:     DayOf(ref).Format("Jan 2, 2006"),
		Start:     start.Format(post.DateLayout),
		End:       end.Format(post.DateLayout),
		RowHeight: RowHeight,
		Slots:     []*caltypes.WeekSlot{},
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(post.DateLayout)
		grid.Days = append(grid.Days, &caltypes.CalendarDay{
			Date:    key,
			Weekday: int(d.Weekday()),
			InMonth: d.Month() == DayOf(ref).Month(),
			IsToday: key == todayKey,
			Posts:   nonNil(byDate[key]),
		})
	}

	for _, p := range posts {
		slot, ok := PlaceInWeek(p, start)
		if ok {
			grid.Slots = append(grid.Slots, slot)
		}
	}
	return grid
}

// PlaceInWeek computes the week-view position of p for the week starting
// on weekStart. Posts outside the week or with an unreadable date or time
// are not placed.
func PlaceInWeek(p *post.ScheduledPost, weekStart time.Time) (*caltypes.WeekSlot, bool) {
	d, err := ParseDate(p.Date)
	if err != nil {
		return nil, false
	}
	weekStart = DayOf(weekStart)
	if d.Before(weekStart) || d.After(weekStart.AddDate(0, 0, 6)) {
		return nil, false
	}
	hours, minutes, ok := post.ParseClock(p.Time)
	if !ok {
		return nil, false
	}

	dayIndex := int(d.Weekday())
	return &caltypes.WeekSlot{
		Post:        p,
		DayIndex:    dayIndex,
		TopPx:       float64(hours)*RowHeight + float64(minutes)/60*RowHeight,
		LeftPercent: float64(dayIndex) * (100.0 / 7),
	}, true
}

// Navigate moves the reference date one page in the given view.
func Navigate(ref time.Time, view caltypes.ViewMode, nav caltypes.Navigation, now time.Time) time.Time {
	ref = DayOf(ref)
	switch nav {
	case caltypes.NavToday:
		return DayOf(now)
	case caltypes.NavNext:
		if view == caltypes.ViewWeek {
			return ref.AddDate(0, 0, 7)
		}
		return AddMonths(ref, 1)
	case caltypes.NavPrev:
		if view == caltypes.ViewWeek {
			return ref.AddDate(0, 0, -7)
		}
		return AddMonths(ref, -1)
	}
	return ref
}

// AddMonths shifts t by n months, clamping the day to the target month's
// length (Jan 31 + 1 month is Feb 28 or 29).
func AddMonths(t time.Time, n int) time.Time {
	t = DayOf(t)
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func bucketByDate(posts []*post.ScheduledPost) map[string][]*post.ScheduledPost {
	out := make(map[string][]*post.ScheduledPost)
	for _, p := range posts {
		out[p.Date] = append(out[p.Date], p)
	}
	return out
}

func nonNil(posts []*post.ScheduledPost) []*post.ScheduledPost {
	if posts == nil {
		return []*post.ScheduledPost{}
	}
	return posts
}
