package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/pending/internal/app"
	"github.com/nhle/pending/internal/i18n"
	"github.com/nhle/pending/internal/model"
	"github.com/nhle/pending/internal/store"
	"github.com/nhle/pending/internal/tasks"
)

// env is everything a command needs once configuration is resolved.
type env struct {
	cfg   *model.AppConfig
	db    *store.SQLiteStore
	tasks *tasks.Store
	prefs store.Preferences
	tr    *i18n.Translator
}

func (e *env) Close() error {
	return e.db.Close()
}

// NewRootCmd builds the full command tree. Running it without a
// subcommand starts the interactive UI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pending",
		Short:         "Pending - a personal task manager for the terminal",
		RunE:          runTUI,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", model.DefaultConfigPath(), "Path to the config file")

	root.AddCommand(addCmd())
	root.AddCommand(listCmd())
	root.AddCommand(doneCmd())
	root.AddCommand(favCmd())
	root.AddCommand(rmCmd())
	root.AddCommand(restoreCmd())
	root.AddCommand(prefsCmd())
	root.AddCommand(configCmd())

	return root
}

// Execute runs the root command.
func Execute(version string) error {
	root := NewRootCmd()
	root.Version = version
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func loadConfig(cmd *cobra.Command) (*model.AppConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	return model.LoadConfig(path)
}

// openEnv loads configuration, opens the database and reads the task
// collection. Callers must Close the returned env.
func openEnv(ctx context.Context, cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	db, err := store.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	ts := tasks.Open(ctx, db, tasks.WithMembers(cfg.Members))
	prefs := store.LoadPreferences(ctx, db)
	return &env{cfg: cfg, db: db, tasks: ts, prefs: prefs, tr: i18n.New(prefs.Language)}, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The UI owns the terminal, so diagnostics go to a file.
	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := tea.LogToFile(cfg.Log.File, "pending")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	e, err := openEnv(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := e.Close(); err != nil {
			log.Printf("Warning: closing store: %v", err)
		}
	}()

	m := app.New(ctx, e.db, e.tasks, e.cfg.Members)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
