package post

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// StorageKey is the fixed slot name every owner's posts live under.
const StorageKey = "trendmind_posts"

const (
	DateLayout    = "2006-01-02"
	TimeLayout    = "15:04"
	DefaultTime   = "09:00"
	titleMaxRunes = 35
)

var ErrInvalidPost = errors.New("invalid post")

type ScheduledPost struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Type    string `json:"type"`
}

type CreatePostRequest struct {
	Topic   string `json:"topic"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Type    string `json:"type"`
}

type PostsResponse struct {
	Posts []*ScheduledPost `json:"posts"`
	Count int              `json:"count"`
}

// Validate checks that the record is well-formed. Dates are not checked
// against a real calendar, so 2026-02-31 passes.
func (p *ScheduledPost) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidPost)
	}
	if !ValidDate(p.Date) {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidPost, p.Date)
	}
	if !ValidTime(p.Time) {
		return fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidPost, p.Time)
	}
	return nil
}

// TitleFromTopic truncates the generation topic into the calendar label.
// The topic is taken as typed, surrounding spaces included.
func TitleFromTopic(topic string) string {
	if utf8.RuneCountInString(topic) > titleMaxRunes {
		topic = string([]rune(topic)[:titleMaxRunes])
	}
	return topic + "..."
}

// SortBySchedule orders posts by (date, time) ascending. Both fields are
// fixed-width, so string comparison is chronological.
func SortBySchedule(posts []*ScheduledPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date != posts[j].Date {
			return posts[i].Date < posts[j].Date
		}
		return posts[i].Time < posts[j].Time
	})
}

func ValidDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	if _, ok := digits(s[0:4]); !ok {
		return false
	}
	month, ok := digits(s[5:7])
	if !ok || month < 1 || month > 12 {
		return false
	}
	day, ok := digits(s[8:10])
	return ok && day >= 1 && day <= 31
}

func ValidTime(s string) bool {
	_, _, ok := ParseClock(s)
	return ok
}

// ParseClock splits an HH:MM string into hours and minutes.
func ParseClock(s string) (int, int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, false
	}
	h, ok := digits(s[0:2])
	if !ok || h > 23 {
		return 0, 0, false
	}
	m, ok := digits(s[3:5])
	if !ok || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

func digits(s string) (int, bool) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
