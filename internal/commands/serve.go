package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API for the web frontend",
	Run: withEngine(func(eng *engine, cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		server := api.NewServer(eng.tasks, eng.sessions, eng.planner)
		fmt.Printf("studyflow API listening on %s\n", addr)
		if err := server.Run(addr); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
}
