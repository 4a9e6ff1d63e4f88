package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/windoze95/saltybytes-mealsearch/internal/config"
	"github.com/windoze95/saltybytes-mealsearch/internal/logger"
	"github.com/windoze95/saltybytes-mealsearch/internal/mealdb"
	"github.com/windoze95/saltybytes-mealsearch/internal/service"
	"github.com/windoze95/saltybytes-mealsearch/internal/tui"
	"go.uber.org/zap"
)

var (
	flagDebounce time.Duration
	flagBaseURL  string
	flagLines    int
	flagLogFile  string
	flagDebug    bool
)

var rootCMD = &cobra.Command{
	Use:   "mealsearch",
	Short: "Search TheMealDB from the terminal",
	Long: `Search TheMealDB by meal name.

Results refresh shortly after you stop typing.

Keyboard shortcuts:
  ↑/↓        Select a result
  Enter      See more / see less
  Esc        Clear the search
  Ctrl+C     Quit`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd)
	},
}

func init() {
	rootCMD.Flags().DurationVar(&flagDebounce, "debounce", 0, "quiet interval before searching (overrides $SEARCH_DEBOUNCE)")
	rootCMD.Flags().StringVar(&flagBaseURL, "base-url", "", "MealDB API base URL (overrides $MEALDB_BASE_URL)")
	rootCMD.Flags().IntVar(&flagLines, "lines", 0, "description lines of a collapsed result (overrides $COLLAPSED_LINES)")
	rootCMD.Flags().StringVar(&flagLogFile, "log-file", "mealsearch.log", "log file path")
	rootCMD.Flags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

func main() {
	if err := rootCMD.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command) error {
	logger.InitFile(flagLogFile, flagDebug)
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("debounce") {
		cfg.EnvVars.SearchDebounce = flagDebounce
	}
	if cmd.Flags().Changed("base-url") {
		cfg.EnvVars.MealDBBaseURL = flagBaseURL
	}
	if cmd.Flags().Changed("lines") {
		cfg.EnvVars.CollapsedLines = flagLines
	}
	if err := cfg.CheckConfigEnvFields(); err != nil {
		return err
	}

	client := mealdb.NewClient(cfg.EnvVars.MealDBBaseURL, cfg.EnvVars.HTTPTimeout, cfg.EnvVars.MealDBRPS)
	svc := service.NewSearchService(cfg, client)

	mailbox := tui.NewMailbox()
	ctrl := svc.NewScreen(logger.Get(), mailbox.Put)
	defer ctrl.Close()

	logger.Get().Info("search screen started",
		zap.Duration("debounce", cfg.EnvVars.SearchDebounce),
		zap.String("base_url", cfg.EnvVars.MealDBBaseURL),
	)

	p := tea.NewProgram(tui.New(ctrl, mailbox, cfg.ScreenText), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run screen: %w", err)
	}
	return nil
}
