package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/planner"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate study sessions from your tasks with Gemini",
	Long: `Send your current task list to Gemini and persist the study sessions it
proposes. Requires gemini_api_key in the config or GEMINI_API_KEY in the
environment. Failed runs leave existing sessions untouched and are not
retried.`,
	Run: withEngine(func(eng *engine, cmd *cobra.Command, args []string) {
		res := eng.planner.Generate(cmd.Context())
		if res.Outcome != planner.OutcomeCommitted {
			return
		}
		for _, s := range res.Sessions {
			fmt.Println(formatSessionLine(eng, s))
		}
	}),
}
