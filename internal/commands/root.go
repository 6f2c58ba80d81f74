package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/studyflow-app/studyflow/internal/config"
	"github.com/studyflow-app/studyflow/internal/notify"
	"github.com/studyflow-app/studyflow/internal/planner"
	"github.com/studyflow-app/studyflow/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "studyflow",
	Short: "A study planner with an AI session scheduler",
	Long: `studyflow turns a list of academic tasks into time-boxed study sessions
and shows them on a calendar. Sessions can be entered by hand or proposed by
Gemini from your current task list.`,
}

// engine bundles the owner-scoped stores and planner behind the commands.
type engine struct {
	cfg      *config.Config
	db       *gorm.DB
	tasks    *store.TaskStore
	sessions *store.SessionStore
	planner  *planner.Planner
	notifier notify.Notifier
}

// initEngine loads config, opens the database and builds the stores.
func initEngine() (*engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	tasks, err := store.NewTaskStore(db, cfg.OwnerID)
	if err != nil {
		return nil, err
	}
	sessions, err := store.NewSessionStore(db, cfg.OwnerID)
	if err != nil {
		return nil, err
	}

	notifier := NewConsoleNotifier()
	return &engine{
		cfg:      cfg,
		db:       db,
		tasks:    tasks,
		sessions: sessions,
		planner:  planner.New(tasks, sessions, planner.NewGeminiClient(cfg.GeminiAPIKey), notifier),
		notifier: notifier,
	}, nil
}

// withEngine wraps a command function, printing bootstrap failures instead of
// panicking.
func withEngine(fn func(*engine, *cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		eng, err := initEngine()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer store.Close(eng.db)
		fn(eng, cmd, args)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("studyflow %s (commit %s, built %s)\n", version, commit, date)
	},
}
