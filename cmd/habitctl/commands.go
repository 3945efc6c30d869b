package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-habits/internal/client"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.api().Login(cmd.Context(), client.Credentials{Email: email, Password: password})
			if err != nil {
				return err
			}
			if err := saveToken(c.tokenPath, savedLogin{Token: res.Token, UserID: res.User.ID, Email: res.User.Email}); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "logged in as %s\n", res.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) registerCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := c.api().Register(cmd.Context(), client.Credentials{Email: email, Password: password})
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "registered %s (%s)\n", u.Email, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password, at least 8 characters (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the saved token and forget it",
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := loadToken(c.tokenPath)
			if err != nil {
				return err
			}
			if err := c.api().WithToken(saved.Token).Logout(cmd.Context()); err != nil {
				return err
			}
			return removeToken(c.tokenPath)
		},
	}
}

func (c *cli) habitsCmd() *cobra.Command {
	habitsCmd := &cobra.Command{Use: "habits", Short: "Habit operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := c.session()
			if err != nil {
				return err
			}
			habits := client.NewHabits(session, c.api())
			defer habits.Close()

			list, err := habits.Load(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tACTIVE\tDAYS")
			for _, h := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", h.ID, h.Name, h.Category, h.IsActive, formatDays(h.RepeatDays))
			}
			return w.Flush()
		},
	}

	var in client.HabitInput
	var notifyBefore int
	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := c.session()
			if err != nil {
				return err
			}
			habits := client.NewHabits(session, c.api())
			defer habits.Close()

			in.Name = args[0]
			if cmd.Flags().Changed("notify-before") {
				in.NotificationMinutesBefore = &notifyBefore
			}
			h, err := habits.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "created %s (%s)\n", h.Name, h.ID)
			return nil
		},
	}
	createCmd.Flags().StringVarP(&in.Description, "description", "d", "", "description")
	createCmd.Flags().StringVarP(&in.Category, "category", "c", "", "category name")
	createCmd.Flags().StringVar(&in.Color, "color", "", "color as #RRGGBB")
	createCmd.Flags().IntSliceVar(&in.RepeatDays, "days", nil, "weekdays 0-6 (Sunday=0); empty means every day")
	createCmd.Flags().StringSliceVar(&in.ScheduleTimes, "at", nil, "reminder times as HH:MM")
	createCmd.Flags().IntVar(&notifyBefore, "notify-before", 0, "minutes before each time to send the reminder")

	deleteCmd := &cobra.Command{
		Use:   "delete HABIT_ID",
		Short: "Delete a habit (its check-ins are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := c.session()
			if err != nil {
				return err
			}
			habits := client.NewHabits(session, c.api())
			defer habits.Close()

			if err := habits.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "deleted %s\n", args[0])
			return nil
		},
	}

	habitsCmd.AddCommand(listCmd, createCmd, deleteCmd)
	return habitsCmd
}

func (c *cli) checkInCmd() *cobra.Command {
	var (
		date      string
		undone    bool
		timeSpent int
		notes     string
	)
	cmd := &cobra.Command{
		Use:   "checkin HABIT_ID",
		Short: "Mark a habit done (or not) for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := c.session()
			if err != nil {
				return err
			}
			checkIns := client.NewCheckIns(session, c.api())
			defer checkIns.Close()

			in := client.CheckInInput{Date: date, Completed: !undone}
			if cmd.Flags().Changed("time") {
				in.TimeSpent = &timeSpent
			}
			if cmd.Flags().Changed("notes") {
				in.Notes = &notes
			}

			ci, err := checkIns.Upsert(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s %s\n", ci.Date, completedMark(ci.Completed))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", time.Now().Format(domain.DateLayout), "day as YYYY-MM-DD")
	cmd.Flags().BoolVar(&undone, "undone", false, "record the day as not completed")
	cmd.Flags().IntVar(&timeSpent, "time", 0, "minutes spent")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	return cmd
}

func (c *cli) checkInsCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "checkins HABIT_ID",
		Short: "List the check-ins of a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := c.session()
			if err != nil {
				return err
			}
			checkIns := client.NewCheckIns(session, c.api())
			defer checkIns.Close()

			var list []domain.CheckIn
			if from != "" || to != "" {
				list, err = checkIns.LoadRange(cmd.Context(), args[0], from, to)
			} else {
				list, err = checkIns.Load(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			for _, ci := range list {
				fmt.Fprintf(c.out, "%s %s\n", ci.Date, completedMark(ci.Completed))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "range start YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "range end YYYY-MM-DD")
	return cmd
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [HABIT_ID]",
		Short: "Show completion statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := loadToken(c.tokenPath)
			if err != nil {
				return err
			}
			api := c.api().WithToken(saved.Token)

			var all []domain.HabitStats
			if len(args) == 1 {
				s, err := api.HabitStats(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				all = []domain.HabitStats{*s}
			} else {
				all, err = api.UserStats(cmd.Context())
				if err != nil {
					return err
				}
			}

			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "HABIT\tDONE\tMISSED\tSTREAK\tRATE\tLAST")
			for _, s := range all {
				last := "-"
				if s.LastCompletedDate != nil {
					last = *s.LastCompletedDate
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d%%\t%s\n",
					s.HabitID, s.TotalDaysCompleted, s.TotalDaysIncomplete, s.StreakDays, s.CompletionRate, last)
			}
			return w.Flush()
		},
	}
}

func completedMark(done bool) string {
	if done {
		return "done"
	}
	return "missed"
}

func formatDays(days []int) string {
	if len(days) == 0 {
		return "daily"
	}
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = time.Weekday(d).String()[:3]
	}
	return strings.Join(names, ",")
}
