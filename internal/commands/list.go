package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/models"
	"github.com/studyflow-app/studyflow/internal/parser"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks ordered by due date",
	Run: withEngine(func(eng *engine, cmd *cobra.Command, args []string) {
		tasks := eng.tasks.List()

		if status, _ := cmd.Flags().GetString("status"); status != "" {
			filtered := tasks[:0:0]
			for _, t := range tasks {
				if t.Status == status {
					filtered = append(filtered, t)
				}
			}
			tasks = filtered
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks. Add one with 'studyflow add'.")
			return
		}

		for _, t := range tasks {
			fmt.Println(formatTaskLine(t))
		}
	}),
}

func formatTaskLine(t models.Task) string {
	mark := "[ ]"
	switch t.Status {
	case models.TaskCompleted:
		mark = "[x]"
	case models.TaskInProgress:
		mark = "[~]"
	}

	line := fmt.Sprintf("%s %s  %s", mark, shortID(t.ID), t.Title)
	if t.Subject != "" {
		line += fmt.Sprintf("  @%s", t.Subject)
	}
	if t.Priority != "" && t.Priority != models.PriorityMedium {
		line += fmt.Sprintf("  +%s", t.Priority)
	}
	if t.Due != nil {
		line += fmt.Sprintf("  due %s", parser.FormatDueDate(t.Due))
	}
	return line
}

func init() {
	listCmd.Flags().StringP("status", "", "", "Filter by status: pending, in-progress, completed")
}
