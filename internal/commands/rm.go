package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm [task-id]",
	Short: "Delete a task",
	Long: `Delete a task permanently. Sessions that reference the task keep their
reference; it simply dangles and is shown as "unknown task".`,
	Args: cobra.ExactArgs(1),
	Run: withEngine(func(eng *engine, cmd *cobra.Command, args []string) {
		task, err := findTask(eng, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := eng.tasks.Delete(task.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Deleted task %s: %s\n", shortID(task.ID), task.Title)
	}),
}
