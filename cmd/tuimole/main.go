// Package main provides the CLI entrypoint for tuimole.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuimole/internal/config"
	"github.com/verte-zerg/tuimole/internal/game"
	"github.com/verte-zerg/tuimole/internal/model"
	"github.com/verte-zerg/tuimole/internal/secrets"
	"github.com/verte-zerg/tuimole/internal/store"
	"github.com/verte-zerg/tuimole/internal/tui"
)

const startupTimeout = 2 * time.Second

var (
	playDuration int
	playHoles    int
	playAdvisor  string
	playModel    string
	playTimeout  time.Duration
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuimole",
		Short:         "Whack-a-mole in the terminal with an adaptive pace",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().IntVar(&playDuration, "duration", game.DefaultDuration, "round length in seconds")
	rootCmd.Flags().IntVar(&playHoles, "holes", game.DefaultHoles, "number of holes (1-9)")
	rootCmd.Flags().StringVar(&playAdvisor, "advisor", providerOpenAI, "difficulty advisor: openai, heuristic or off")
	rootCmd.Flags().StringVar(&playModel, "model", defaultModel, "model name for the openai advisor")
	rootCmd.Flags().DurationVar(&playTimeout, "timeout", game.DefaultAdvisorWait, "how long to wait for each advisor verdict")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newBestCmd())
	rootCmd.AddCommand(newKeyCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return err
	}
	env, err := config.LoadEnv(".env")
	if err != nil {
		return err
	}
	cfg := resolvePlayConfig(cmd, fileCfg, env)
	if err := validateConfig(cfg); err != nil {
		return err
	}

	var logger *log.Logger
	if env.Debug {
		logPath := config.DefaultDebugLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := tea.LogToFile(logPath, "tuimole")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				// Best-effort close of the debug log.
				_ = cerr
			}
		}()
		logger = log.Default()
	}

	apiKey, _ := resolveAPIKey(env, secrets.NewKeyring("", config.DefaultSecretsPath()))
	advisor, providerName, err := buildAdvisor(cfg.Advisor, apiKey)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The engine reloads the best score on every start; this read only fills
	// the HUD before the first round.
	loadCtx, loadCancel := context.WithTimeout(ctx, startupTimeout)
	best, err := st.BestScore(loadCtx)
	loadCancel()
	if err != nil {
		logErrf("failed to load best score: %v\n", err)
	}

	loop := game.NewLoop()
	bridge := tui.NewBridge()
	engine := game.NewEngine(loop, game.Options{
		Holes:         cfg.Holes,
		Duration:      cfg.Duration,
		AdvisorPeriod: cfg.AdvisorPeriod,
		Advisor:       advisor,
		Records:       st,
		Observer:      bridge,
		Logger:        engineLogger(logger),
	})

	screen := tui.NewModel(engine, tui.Options{
		Holes:    cfg.Holes,
		Duration: cfg.Duration,
		Best:     best,
		Provider: providerName,
		Recorder: st,
	})
	program := tea.NewProgram(screen, tea.WithAltScreen())

	go func() {
		if err := loop.Run(ctx); err != nil && logger != nil {
			logger.Printf("game loop stopped: %v", err)
		}
	}()
	go bridge.Run(ctx, program.Send)

	_, runErr := program.Run()
	engine.Close()
	cancel()
	if runErr != nil {
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}
	return nil
}

func engineLogger(l *log.Logger) game.Logger {
	if l == nil {
		return nil
	}
	return l
}

func resolvePlayConfig(cmd *cobra.Command, fileCfg config.FileConfig, env config.Env) model.Config {
	applyIntConfig(cmd, "duration", &playDuration, fileCfg.Game.Duration)
	applyIntConfig(cmd, "holes", &playHoles, fileCfg.Game.Holes)
	applyStringConfig(cmd, "advisor", &playAdvisor, fileCfg.Advisor.Provider)
	applyStringConfig(cmd, "model", &playModel, fileCfg.Advisor.Model)
	applyDurationConfig(cmd, "timeout", &playTimeout, fileCfg.Advisor.Timeout)
	applyStringConfig(cmd, "model", &playModel, envValue(env.AdvisorModel))

	cfg := model.Config{
		Holes:         playHoles,
		Duration:      playDuration,
		AdvisorPeriod: game.DefaultAdvisorPeriod,
		Advisor: model.AdvisorConfig{
			Provider:    playAdvisor,
			Model:       playModel,
			Timeout:     playTimeout,
			Temperature: defaultTemperature,
		},
	}
	if p := fileCfg.Game.AdvisorPeriod; p != nil {
		cfg.AdvisorPeriod = p.Duration
	}
	if v := fileCfg.Advisor.BaseURL; v != nil {
		cfg.Advisor.BaseURL = *v
	}
	if env.AdvisorURL != "" {
		cfg.Advisor.BaseURL = env.AdvisorURL
	}
	if v := fileCfg.Advisor.Temperature; v != nil {
		cfg.Advisor.Temperature = *v
	}
	if v := fileCfg.Advisor.MinInterval; v != nil {
		cfg.Advisor.MinInterval = v.Duration
	}
	return cfg
}

func envValue(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *config.Duration) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value.Duration
}

func validateConfig(cfg model.Config) error {
	if cfg.Duration <= 0 {
		return fmt.Errorf("--duration must be > 0")
	}
	if cfg.Holes < 1 || cfg.Holes > 9 {
		return fmt.Errorf("--holes must be between 1 and 9")
	}
	if cfg.AdvisorPeriod < game.MinAdvisorPeriod {
		return fmt.Errorf("advisor-period must be at least %s", game.MinAdvisorPeriod)
	}
	switch cfg.Advisor.Provider {
	case providerOpenAI, providerHeuristic, providerOff:
	default:
		return fmt.Errorf("--advisor must be one of %s, %s, %s", providerOpenAI, providerHeuristic, providerOff)
	}
	// Advice can land up to Timeout late, so the gap between two spawner
	// restarts is at least AdvisorPeriod - Timeout.
	maxTimeout := cfg.AdvisorPeriod - time.Duration(game.MaxSpeedMs)*time.Millisecond
	if cfg.Advisor.Timeout <= 0 || cfg.Advisor.Timeout > maxTimeout {
		return fmt.Errorf("--timeout must be > 0 and at most %s for an advisor period of %s", maxTimeout, cfg.AdvisorPeriod)
	}
	if cfg.Advisor.Temperature < 0 || cfg.Advisor.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if cfg.Advisor.MinInterval < 0 {
		return fmt.Errorf("min-interval must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func printf(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
