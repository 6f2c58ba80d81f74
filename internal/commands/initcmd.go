package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config skeleton to ~/.studyflow/config.yaml",
	Run: func(cmd *cobra.Command, args []string) {
		path := config.Path()
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Config already exists at %s\n", path)
			return
		}

		cfg := config.DefaultConfig()
		if owner, _ := cmd.Flags().GetString("owner"); owner != "" {
			cfg.OwnerID = owner
		}
		if err := config.Write(cfg, path); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Wrote %s\n", path)
		fmt.Println("Set gemini_api_key (or export GEMINI_API_KEY) to enable 'studyflow plan'.")
	},
}

func init() {
	initCmd.Flags().String("owner", "", "Owner id to write into the config")
}
