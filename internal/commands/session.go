package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/models"
	"github.com/studyflow-app/studyflow/internal/parser"
	"github.com/studyflow-app/studyflow/internal/schedule"
	"github.com/studyflow-app/studyflow/internal/store"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage study sessions",
}

var sessionAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a study session",
	Long: `Add a study session on a calendar day.

Examples:
  studyflow session add "Essay outline" --from 09:00 --to 10:30
  studyflow session add "Revision" --date 15/12/2026 --from 14:00 --to 16:00 --subject History`,
	Args: cobra.MinimumNArgs(1),
	Run: withEngine(func(eng *engine, cmd *cobra.Command, args []string) {
		dateStr, _ := cmd.Flags().GetString("date")
		day, err := parser.ParseDay(dateStr)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		start, err := parser.ParseClock(day, from)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		end, err := parser.ParseClock(day, to)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		req := store.CreateSessionRequest{
			Title:     strings.Join(args, " "),
			StartTime: start,
			EndTime:   end,
		}
		req.Subject, _ = cmd.Flags().GetString("subject")
		req.Description, _ = cmd.Flags().GetString("description")
		if ref, _ := cmd.Flags().GetString("task"); ref != "" {
			task, err := findTask(eng, ref)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			req.RelatedTaskID = task.ID
		}

		session, err := eng.sessions.Create(req)
		if errors.Is(err, schedule.ErrInvalidRange) {
			fmt.Println("Error: end time must be after start time")
			return
		}
		if err != nil {
			fmt.Printf("Error creating session: %v\n", err)
			return
		}

		fmt.Printf("Created session %s: %s\n", shortID(session.ID), session.Title)
		fmt.Printf("  %s  %s–%s\n",
			session.StartTime.Format("02/01/2006"),
			session.StartTime.Format("15:04"),
			session.EndTime.Format("15:04"))
	}),
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List study sessions ordered by start time",
	Run: withEngine(func(eng *engine, cmd *cobra.Command, args []string) {
		sessions := eng.sessions.List()

		if dateStr, _ := cmd.Flags().GetString("date"); dateStr != "" {
			day, err := parser.ParseDay(dateStr)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			sessions = schedule.SessionsOnDay(sessions, day)
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions. Add one with 'studyflow session add' or run 'studyflow plan'.")
			return
		}

		for _, s := range sessions {
			fmt.Println(formatSessionLine(eng, s))
		}
	}),
}

func formatSessionLine(eng *engine, s models.Session) string {
	line := fmt.Sprintf("%s  %s %s–%s  %s",
		shortID(s.ID),
		s.StartTime.Format("02/01/2006"),
		s.StartTime.Format("15:04"),
		s.EndTime.Format("15:04"),
		s.Title)
	if s.Subject != "" {
		line += fmt.Sprintf("  @%s", s.Subject)
	}
	if s.Status != "" && s.Status != models.SessionScheduled {
		line += fmt.Sprintf("  [%s]", s.Status)
	}
	if s.RelatedTaskID != "" {
		// Weak reference: resolve best-effort, never error on a dangling id.
		if task, err := eng.tasks.Get(s.RelatedTaskID); err == nil {
			line += fmt.Sprintf("  (task: %s)", task.Title)
		} else {
			line += "  (task: unknown task)"
		}
	}
	return line
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm [session-id]",
	Short: "Delete a study session",
	Args:  cobra.ExactArgs(1),
	Run: withEngine(func(eng *engine, cmd *cobra.Command, args []string) {
		session, err := findSession(eng, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := eng.sessions.Delete(session.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Deleted session %s: %s\n", shortID(session.ID), session.Title)
	}),
}

func init() {
	sessionAddCmd.Flags().String("date", "", "Calendar day dd/mm/yyyy (default today)")
	sessionAddCmd.Flags().String("from", "09:00", "Start time HH:MM")
	sessionAddCmd.Flags().String("to", "10:00", "End time HH:MM")
	sessionAddCmd.Flags().StringP("subject", "s", "", "Subject tag")
	sessionAddCmd.Flags().StringP("description", "d", "", "Session description")
	sessionAddCmd.Flags().String("task", "", "Related task id")

	sessionListCmd.Flags().String("date", "", "Only sessions on this day (dd/mm/yyyy)")

	sessionCmd.AddCommand(sessionAddCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}
