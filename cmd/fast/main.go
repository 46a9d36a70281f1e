package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fast/internal/bootstrap"
	sessiondto "fast/internal/modules/session/dto"
	settingsdto "fast/internal/modules/settings/dto"
	statsdto "fast/internal/modules/stats/dto"
	"fast/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "fast",
		Short:         "Intermittent fasting tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default ~/.fast)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newStartCmd(&dataDir))
	root.AddCommand(newEndCmd(&dataDir))
	root.AddCommand(newStatusCmd(&dataDir))
	root.AddCommand(newEditCmd(&dataDir))
	root.AddCommand(newDeleteCmd(&dataDir))
	root.AddCommand(newHistoryCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newSettingsCmd(&dataDir))
	root.AddCommand(newWatchCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

// parseAt accepts an empty string as "now" (the zero time downstream).
func parseAt(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("--at must be RFC3339 (e.g. 2026-08-28T20:00:00+02:00): %w", err)
	}
	return at, nil
}

func printSession(cmd *cobra.Command, s sessiondto.SessionOutput) {
	state := "ended"
	if s.Active {
		state = "active"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s started=%s", state, s.ID, s.StartAt.Format(time.RFC3339))
	if s.EndAt != nil {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), " ended=%s", s.EndAt.Format(time.RFC3339))
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), " elapsed=%s", s.Elapsed.Round(time.Second))
	if s.HasTarget {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), " target=%s remaining=%s goal_reached=%t", *s.Target, s.Remaining.Round(time.Second), s.GoalReached)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the fasting tracker terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newStartCmd(dataDir *string) *cobra.Command {
	var at, target string
	start := &cobra.Command{
		Use:   "start",
		Short: "Start a fast",
		RunE: func(cmd *cobra.Command, _ []string) error {
			startAt, err := parseAt(at)
			if err != nil {
				return err
			}
			var targetDur *time.Duration
			if strings.TrimSpace(target) != "" {
				d, err := time.ParseDuration(target)
				if err != nil {
					return fmt.Errorf("--target must be a duration (e.g. 16h): %w", err)
				}
				targetDur = &d
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Start(context.Background(), startAt, targetDur)
			if err != nil {
				return err
			}
			printSession(cmd, out)
			return nil
		},
	}
	start.Flags().StringVar(&at, "at", "", "start time, RFC3339 (default now)")
	start.Flags().StringVar(&target, "target", "", "target duration, e.g. 16h (default open-ended)")
	return start
}

func newEndCmd(dataDir *string) *cobra.Command {
	var at string
	end := &cobra.Command{
		Use:   "end",
		Short: "End the active fast",
		RunE: func(cmd *cobra.Command, _ []string) error {
			endAt, err := parseAt(at)
			if err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.End(context.Background(), endAt)
			if err != nil {
				return err
			}
			if out.Discarded {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "fast discarded: shorter than one minute")
				return nil
			}
			printSession(cmd, out.Session)
			return nil
		},
	}
	end.Flags().StringVar(&at, "at", "", "end time, RFC3339 (default now)")
	return end
}

func newStatusCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active fast",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Active(context.Background())
			if err != nil {
				return err
			}
			printSession(cmd, out)
			return nil
		},
	}
}

func newEditCmd(dataDir *string) *cobra.Command {
	edit := &cobra.Command{Use: "edit", Short: "Retroactively edit a fast"}

	var startID, startAt string
	editStart := &cobra.Command{
		Use:   "start --at <time>",
		Short: "Move a fast's start time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			at, err := requireAt(startAt)
			if err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.EditStart(context.Background(), startID, at)
			if err != nil {
				return err
			}
			printSession(cmd, out)
			return nil
		},
	}
	editStart.Flags().StringVar(&startID, "id", "", "session id (default the active fast)")
	editStart.Flags().StringVar(&startAt, "at", "", "new start time, RFC3339")

	var endID, endAt string
	editEnd := &cobra.Command{
		Use:   "end --id <id> --at <time>",
		Short: "Move a completed fast's end time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(endID) == "" {
				return fmt.Errorf("--id is required")
			}
			at, err := requireAt(endAt)
			if err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.EditEnd(context.Background(), endID, at)
			if err != nil {
				return err
			}
			printSession(cmd, out)
			return nil
		},
	}
	editEnd.Flags().StringVar(&endID, "id", "", "session id")
	editEnd.Flags().StringVar(&endAt, "at", "", "new end time, RFC3339")

	edit.AddCommand(editStart, editEnd)
	return edit
}

func requireAt(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, fmt.Errorf("--at is required")
	}
	return parseAt(raw)
}

func newDeleteCmd(dataDir *string) *cobra.Command {
	var sessionID string
	del := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a fast",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(sessionID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.SessionCLI.Delete(context.Background(), sessionID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", sessionID)
			return nil
		},
	}
	del.Flags().StringVar(&sessionID, "id", "", "session id")
	return del
}

func newHistoryCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List all fasts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			sessions, err := app.SessionCLI.All(context.Background())
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no fasts recorded")
				return nil
			}
			for _, s := range sessions {
				printSession(cmd, s)
			}
			return nil
		},
	}
}

func newStatsCmd(dataDir *string) *cobra.Command {
	var day string
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show fasting statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if strings.TrimSpace(day) != "" {
				parsed, err := time.Parse("2006-01-02", day)
				if err != nil {
					return fmt.Errorf("--day must be YYYY-MM-DD: %w", err)
				}
				detail, err := app.StatsCLI.DayDetail(context.Background(), statsdto.Day{
					Year:  parsed.Year(),
					Month: int(parsed.Month()),
					Day:   parsed.Day(),
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s → %s elapsed=%s\n",
					detail.SessionID,
					detail.Start.Format(time.RFC3339),
					detail.End.Format(time.RFC3339),
					detail.Elapsed.Round(time.Second))
				return nil
			}
			summary, err := app.StatsCLI.Summary(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total fasted: %dh\n", summary.TotalHours)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "current streak: %dd\n", summary.CurrentStreak)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "fasted days: %d\n", summary.FastedDays)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "completed fasts: %d\n", summary.TotalFasts)
			return nil
		},
	}
	stats.Flags().StringVar(&day, "day", "", "show the fast credited to a day (YYYY-MM-DD)")
	return stats
}

func newSettingsCmd(dataDir *string) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Reminder settings"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SettingsCLI.Get(context.Background())
			if err != nil {
				return err
			}
			printSettings(cmd, out)
			return nil
		},
	})

	var enabled, disabled bool
	var hour, minute int
	set := &cobra.Command{
		Use:   "set",
		Short: "Update reminder settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if enabled && disabled {
				return fmt.Errorf("--on and --off are mutually exclusive")
			}
			var input settingsdto.UpdateInput
			if enabled || disabled {
				input.ReminderEnabled = &enabled
			}
			if cmd.Flags().Changed("hour") {
				input.ReminderHour = &hour
			}
			if cmd.Flags().Changed("minute") {
				input.ReminderMinute = &minute
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SettingsCLI.Update(context.Background(), input)
			if err != nil {
				return err
			}
			printSettings(cmd, out)
			return nil
		},
	}
	set.Flags().BoolVar(&enabled, "on", false, "enable reminders")
	set.Flags().BoolVar(&disabled, "off", false, "disable reminders")
	set.Flags().IntVar(&hour, "hour", 20, "daily reminder hour (0-23)")
	set.Flags().IntVar(&minute, "minute", 0, "daily reminder minute (0-59)")
	settings.AddCommand(set)
	return settings
}

func printSettings(cmd *cobra.Command, s settingsdto.SettingsOutput) {
	state := "off"
	if s.ReminderEnabled {
		state = "on"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reminders %s at %02d:%02d\n", state, s.ReminderHour, s.ReminderMinute)
}

// watch keeps the ticking engine alive without the TUI, so a fast with a
// target auto-completes at the goal instant even on a headless box.
func newWatchCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the elapsed-time engine in the foreground",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Resume(context.Background())
			if err != nil {
				return err
			}
			app.Logger.Info("watching active fast", "session", out.ID, "started", out.StartAt.Format(time.RFC3339))

			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
			// AutoEnded fires after the completion subscriber has persisted
			// the end; this also covers a goal that passed while nothing
			// was running, since Resume auto-ends immediately.
			select {
			case <-app.AutoEnded:
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "goal reached, fast ended")
			case sig := <-sigs:
				app.Logger.Info("stopping watch", "signal", sig.String())
			}
			app.Engine.Stop()
			return nil
		},
	}
}
