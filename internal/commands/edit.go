package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/parser"
	"github.com/studyflow-app/studyflow/internal/store"
)

var editCmd = &cobra.Command{
	Use:   "edit [task-id]",
	Short: "Edit an existing task",
	Long: `Edit fields of an existing task. Only the flags you pass are changed;
the update timestamp is always refreshed.

Usage:
  studyflow edit 4f3a2b1c --title "Finish essay draft" --status in-progress`,
	Args: cobra.ExactArgs(1),
	Run: withEngine(func(eng *engine, cmd *cobra.Command, args []string) {
		task, err := findTask(eng, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		var upd store.TaskUpdate
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			upd.Title = &title
		}
		if cmd.Flags().Changed("description") {
			desc, _ := cmd.Flags().GetString("description")
			upd.Description = &desc
		}
		if cmd.Flags().Changed("subject") {
			subject, _ := cmd.Flags().GetString("subject")
			upd.Subject = &subject
		}
		if cmd.Flags().Changed("priority") {
			raw, _ := cmd.Flags().GetString("priority")
			priority, ok := parser.NormalizePriority(raw)
			if !ok {
				fmt.Printf("Error: invalid priority '%s'\n", raw)
				return
			}
			upd.Priority = &priority
		}
		if cmd.Flags().Changed("status") {
			status, _ := cmd.Flags().GetString("status")
			upd.Status = &status
		}
		if cmd.Flags().Changed("due") {
			raw, _ := cmd.Flags().GetString("due")
			if raw == "" {
				upd.ClearDue = true
			} else {
				due, err := parser.ParseDueDate(raw)
				if err != nil {
					fmt.Printf("Error parsing due date: %v\n", err)
					return
				}
				upd.Due = due
			}
		}

		task, err = eng.tasks.Update(task.ID, upd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Updated task %s: %s\n", shortID(task.ID), task.Title)
	}),
}

func init() {
	editCmd.Flags().String("title", "", "New title")
	editCmd.Flags().StringP("description", "d", "", "New description")
	editCmd.Flags().StringP("subject", "s", "", "New subject")
	editCmd.Flags().StringP("priority", "p", "", "New priority")
	editCmd.Flags().String("status", "", "New status: pending, in-progress, completed")
	editCmd.Flags().String("due", "", "New due date; empty string clears it")
}
