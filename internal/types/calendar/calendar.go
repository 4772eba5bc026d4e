package calendar

import "trendmindAPI/internal/types/post"

type ViewMode string

const (
	ViewMonth ViewMode = "month"
	ViewWeek  ViewMode = "week"
)

type Navigation string

const (
	NavNone  Navigation = ""
	NavNext  Navigation = "next"
	NavPrev  Navigation = "prev"
	NavToday Navigation = "today"
)

type CalendarDay struct {
	Date    string                `json:"date"`
	Weekday int                   `json:"weekday"`
	InMonth bool                  `json:"in_month"`
	IsToday bool                  `json:"is_today"`
	Posts   []*post.ScheduledPost `json:"posts"`
}

type MonthGrid struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Label string         `json:"label"`
	Start string         `json:"start"`
	End   string         `json:"end"`
	Days  []*CalendarDay `json:"days"`
}

type WeekSlot struct {
	Post        *post.ScheduledPost `json:"post"`
	DayIndex    int                 `json:"day_index"`
	TopPx       float64             `json:"top_px"`
	LeftPercent float64             `json:"left_percent"`
}

type WeekGrid struct {
	Label     string         `json:"label"`
	Start     string         `json:"start"`
	End       string         `json:"end"`
	RowHeight int            `json:"row_height"`
	Days      []*CalendarDay `json:"days"`
	Slots     []*WeekSlot    `json:"slots"`
}

type CalendarResponse struct {
	View      ViewMode   `json:"view"`
	Reference string     `json:"reference"`
	Month     *MonthGrid `json:"month,omitempty"`
	Week      *WeekGrid  `json:"week,omitempty"`
}
