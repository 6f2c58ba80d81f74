package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/models"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Toggle a task between completed and pending",
	Long: `Toggle a task's completion state.

A pending or in-progress task becomes completed; a completed task goes back
to pending. The toggle never restores in-progress.`,
	Args: cobra.ExactArgs(1),
	Run: withEngine(func(eng *engine, cmd *cobra.Command, args []string) {
		task, err := findTask(eng, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		task, err = eng.tasks.ToggleCompletion(task)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if task.Status == models.TaskCompleted {
			fmt.Printf("✅ Marked task %s as completed: %s\n", shortID(task.ID), task.Title)
		} else {
			fmt.Printf("↩️  Marked task %s back to pending: %s\n", shortID(task.ID), task.Title)
		}
	}),
}
