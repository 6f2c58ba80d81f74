package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/tui"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Browse sessions on an interactive month calendar",
	Run: withEngine(func(eng *engine, cmd *cobra.Command, args []string) {
		if err := tui.RunCalendarTUI(eng.tasks, eng.sessions); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}
