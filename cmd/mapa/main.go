package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"mapa/internal/app"
	"mapa/internal/tui"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

func loadConfig(cmd *cobra.Command) (app.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = app.DefaultConfigPath()
	}
	cfg, err := app.LoadConfig(path)
	if err != nil {
		return app.Config{}, err
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *app.Config) {
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if dir := os.Getenv("MAPA_INDEX_DIR"); dir != "" {
		cfg.IndexDir = dir
	}
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mock, _ := cmd.Flags().GetBool("mock")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApplication(ctx, cfg, mock)
	if err != nil {
		return err
	}
	defer application.Close()

	return tui.Run(application)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.CorpusPaths = args
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApplication(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer application.Close()

	n, err := application.Knowledge.Rebuild(ctx, cfg.CorpusPaths)
	if err != nil {
		return err
	}
	fmt.Printf("indexed %d chunks from %d corpus path(s)\n", n, len(cfg.CorpusPaths))
	return nil
}

func usersCommand() *cobra.Command {
	users := &cobra.Command{
		Use:   "users",
		Short: "Manage the local account table",
	}
	users.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered usernames",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store := app.NewUserStore(cfg.UsersFile)
			names := make([]string, 0)
			for name := range store.Load() {
				names = append(names, name)
			}
			sort.Strings(names)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, name := range names {
				fmt.Fprintln(w, name)
			}
			return w.Flush()
		},
	})
	users.AddCommand(&cobra.Command{
		Use:   "add <username> <password>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return app.NewUserStore(cfg.UsersFile).Create(args[0], args[1], args[1])
		},
	})
	users.AddCommand(&cobra.Command{
		Use:   "remove <username>",
		Short: "Delete an account and its archived conversations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			application, err := app.NewApplication(cmd.Context(), cfg, true)
			if err != nil {
				return err
			}
			defer application.Close()
			if !application.DeleteAccount(args[0]) {
				return fmt.Errorf("no such user: %s", args[0])
			}
			return nil
		},
	})
	return users
}

func main() {
	root := &cobra.Command{
		Use:     "mapa",
		Short:   "MAPA - campus assistant for Mapúa University",
		Long:    "MAPA answers questions about Mapúa University from an indexed local corpus.\n\nRun without arguments for the interactive chat.",
		Version: version,
		RunE:    runChat,
	}
	root.PersistentFlags().String("config", "", "path to config file")
	root.Flags().Bool("mock", false, "run without the Gemini API (canned answers)")

	root.AddCommand(&cobra.Command{
		Use:   "ingest [paths...]",
		Short: "Rebuild the knowledge base from the corpus",
		RunE:  runIngest,
	})
	root.AddCommand(usersCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
