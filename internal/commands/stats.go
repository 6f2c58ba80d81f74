package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/dashboard"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task and session progress",
	Run: withEngine(func(eng *engine, cmd *cobra.Command, args []string) {
		s := dashboard.Summarize(eng.tasks.List(), eng.sessions.List(), time.Now())

		fmt.Printf("Tasks: %d total, %d pending, %d in progress, %d completed (%.0f%%)\n",
			s.TasksTotal, s.TasksPending, s.TasksInProgress, s.TasksCompleted, s.TaskCompletionPct)
		fmt.Printf("Sessions: %d total, %d scheduled, %d completed (%.0f%%), %d cancelled, %d upcoming\n",
			s.SessionsTotal, s.SessionsScheduled, s.SessionsCompleted, s.SessionCompletionPct,
			s.SessionsCancelled, s.SessionsUpcoming)

		if len(s.TasksBySubject) > 0 {
			subjects := make([]string, 0, len(s.TasksBySubject))
			for subject := range s.TasksBySubject {
				subjects = append(subjects, subject)
			}
			sort.Strings(subjects)
			fmt.Println("By subject:")
			for _, subject := range subjects {
				fmt.Printf("  %-20s %d\n", subject, s.TasksBySubject[subject])
			}
		}
	}),
}
