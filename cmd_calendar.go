package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	caltypes "trendmindAPI/internal/types/calendar"
	"trendmindAPI/services"
)

var (
	calView  string
	calDate  string
	calNav   string
	calOwner string
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Print a user's calendar grid as JSON",
	Long: `Loads the owner's posts from the configured store and prints the month
or week layout the dashboard would render.

Example:
  trendmind calendar --owner user_2abc --view week --date 2026-10-21`,
	RunE: runCalendar,
}

func init() {
	calendarCmd.Flags().StringVar(&calView, "view", "month", "Calendar view: month or week")
	calendarCmd.Flags().StringVar(&calDate, "date", "", "Reference date YYYY-MM-DD (default: today)")
	calendarCmd.Flags().StringVar(&calNav, "nav", "", "Navigate from the reference date: next, prev or today")
	calendarCmd.Flags().StringVar(&calOwner, "owner", "", "Clerk user id owning the posts (required)")
	calendarCmd.MarkFlagRequired("owner")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(commandContext(cmd), 10*time.Second)
	defer cancel()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	svc := services.NewCalendarService(st, logger)
	resp, err := svc.GetCalendar(ctx, calOwner, services.CalendarQuery{
		View: caltypes.ViewMode(calView),
		Date: calDate,
		Nav:  caltypes.Navigation(calNav),
	})
	if err != nil {
		return fmt.Errorf("failed to build calendar: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
