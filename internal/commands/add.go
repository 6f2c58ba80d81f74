package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/parser"
	"github.com/studyflow-app/studyflow/internal/store"
)

var addCmd = &cobra.Command{
	Use:   "add [task title]",
	Short: "Add a new task",
	Long: `Add a new academic task.

Smart parsing syntax:
  @subject      - Subject tag (e.g. @literature)
  +priority     - Priority (low/medium/high or 1/2/3)
  due:dd/mm/yyyy - Due date

Examples:
  studyflow add "Finish essay @literature +high" --due "3 days"
  studyflow add "Read chapter 7" --subject History --priority medium`,
	Args: cobra.MinimumNArgs(1),
	Run: withEngine(func(eng *engine, cmd *cobra.Command, args []string) {
		parsed := parser.ParseTitle(strings.Join(args, " "))
		if len(parsed.Errors) > 0 {
			fmt.Printf("Error: %s\n", strings.Join(parsed.Errors, ", "))
			return
		}

		req := store.CreateTaskRequest{
			Title:    parsed.Title,
			Subject:  parsed.Subject,
			Priority: parsed.Priority,
			Due:      parsed.DueDate,
		}

		// Flags take precedence over inline syntax
		if subject, _ := cmd.Flags().GetString("subject"); subject != "" {
			req.Subject = subject
		}
		if priority, _ := cmd.Flags().GetString("priority"); priority != "" {
			normalized, ok := parser.NormalizePriority(priority)
			if !ok {
				fmt.Printf("Error: invalid priority '%s'\n", priority)
				return
			}
			req.Priority = normalized
		}
		if due, _ := cmd.Flags().GetString("due"); due != "" {
			dueDate, err := parser.ParseDueDate(due)
			if err != nil {
				fmt.Printf("Error parsing due date: %v\n", err)
				return
			}
			req.Due = dueDate
		}
		if desc, _ := cmd.Flags().GetString("description"); desc != "" {
			req.Description = desc
		}

		task, err := eng.tasks.Create(req)
		if err != nil {
			fmt.Printf("Error creating task: %v\n", err)
			return
		}

		fmt.Printf("Created task %s: %s\n", shortID(task.ID), task.Title)
		if task.Subject != "" {
			fmt.Printf("  Subject: %s\n", task.Subject)
		}
		fmt.Printf("  Priority: %s\n", task.Priority)
		if task.Due != nil {
			fmt.Printf("  Due: %s\n", parser.FormatDueDate(task.Due))
		}
	}),
}

// shortID abbreviates a uuid for display; full ids are accepted everywhere.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	addCmd.Flags().StringP("subject", "s", "", "Subject tag")
	addCmd.Flags().StringP("priority", "p", "", "Priority: low, medium, high, or 1-3")
	addCmd.Flags().StringP("due", "", "", "Due date: dd/mm/yyyy, X days, X hours, X weeks")
	addCmd.Flags().StringP("description", "d", "", "Task description")
}
