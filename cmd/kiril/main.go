// Package main provides the CLI entrypoint for kiril.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/kiril/internal/alphabet"
	"github.com/verte-zerg/kiril/internal/audio"
	"github.com/verte-zerg/kiril/internal/clock"
	"github.com/verte-zerg/kiril/internal/config"
	"github.com/verte-zerg/kiril/internal/export"
	"github.com/verte-zerg/kiril/internal/generator"
	"github.com/verte-zerg/kiril/internal/logging"
	"github.com/verte-zerg/kiril/internal/model"
	"github.com/verte-zerg/kiril/internal/progress"
	"github.com/verte-zerg/kiril/internal/stats"
	"github.com/verte-zerg/kiril/internal/store"
	"github.com/verte-zerg/kiril/internal/tui"
	"github.com/verte-zerg/kiril/internal/wordlist"
)

const (
	speechInterval = 400 * time.Millisecond
	reportGames    = 20
	fallbackWidth  = 80
)

var (
	flagDB       string
	flagDwell    int
	flagLock     int
	flagLives    int
	flagSeconds  int
	flagDeck     int
	flagPairs    int
	flagNoAudio  bool
	flagLogLevel string

	resetReflex bool
	exportOut   string
	statsColor  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := config.Defaults()
	rootCmd := &cobra.Command{
		Use:           "kiril",
		Short:         "Learn the Cyrillic alphabet from Turkish",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTUICmd,
	}

	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database path (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", defaults.LogLevel, "log level (debug, info, warn, error, off)")
	rootCmd.Flags().IntVar(&flagDwell, "dwell", defaults.DwellSeconds, "seconds to look at a new letter before answering")
	rootCmd.Flags().IntVar(&flagLock, "lock-streak", defaults.LockStreak, "correct answers in a row that lock a letter")
	rootCmd.Flags().IntVar(&flagLives, "lives", defaults.RainLives, "lives in Rain")
	rootCmd.Flags().IntVar(&flagSeconds, "blitz-seconds", defaults.BlitzSeconds, "Blitz round length in seconds")
	rootCmd.Flags().IntVar(&flagDeck, "deck", defaults.BlitzDeck, "cards per Blitz deck")
	rootCmd.Flags().IntVar(&flagPairs, "pairs", defaults.MatchPairs, "pairs per Matching round")
	rootCmd.Flags().BoolVar(&flagNoAudio, "no-audio", false, "disable speech and tones")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newTranslitCmd())

	return rootCmd
}

// app bundles what every command that touches the record needs.
type app struct {
	settings model.Settings
	log      *zap.Logger
	store    *store.Store
	progress *progress.Store
	closers  []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func loadSettings(cmd *cobra.Command) (model.Settings, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	env, err := config.LoadEnv(config.DefaultEnvPath())
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to load env: %w", err)
	}
	s, err := config.Resolve(fileCfg, env)
	if err != nil {
		return model.Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	applyStringFlag(cmd, "db", &s.DBPath, flagDB)
	applyStringFlag(cmd, "log-level", &s.LogLevel, flagLogLevel)
	applyIntFlag(cmd, "dwell", &s.DwellSeconds, flagDwell)
	applyIntFlag(cmd, "lock-streak", &s.LockStreak, flagLock)
	applyIntFlag(cmd, "lives", &s.RainLives, flagLives)
	applyIntFlag(cmd, "blitz-seconds", &s.BlitzSeconds, flagSeconds)
	applyIntFlag(cmd, "deck", &s.BlitzDeck, flagDeck)
	applyIntFlag(cmd, "pairs", &s.MatchPairs, flagPairs)
	if flagChanged(cmd, "no-audio") && flagNoAudio {
		s.AudioEnabled = false
	}
	if err := config.Validate(s); err != nil {
		return model.Settings{}, err
	}
	return s, nil
}

func openApp(cmd *cobra.Command) (*app, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	log, closeLog, err := logging.New(logging.Options{Path: s.LogPath, Level: s.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("failed to init logging: %w", err)
	}
	a := &app{settings: s, log: log, closers: []func(){closeLog}}

	st, err := store.Open(s.DBPath)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	a.store = st
	a.closers = append(a.closers, func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	})
	a.progress = progress.New(st, clock.Real{}, log)
	a.progress.Rollover()
	a.closers = append(a.closers, a.progress.Close)
	log.Debug("app opened", zap.String("db", s.DBPath))
	return a, nil
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var speaker audio.Speaker = audio.Nop{}
	if a.settings.AudioEnabled {
		speaker = audio.NewExecSpeaker(a.settings.SpeechCmd, speechInterval, a.log)
	}
	words, err := loadWords(a.log)
	if err != nil {
		return err
	}
	deps := tui.Deps{
		Progress: a.progress,
		Games:    a.store,
		Settings: a.settings,
		Speaker:  speaker,
		Player:   audio.NewPlayer(a.settings.AudioEnabled, a.settings.Volume, a.log),
		Clock:    clock.Real{},
		Rand:     generator.New(),
		Log:      a.log,
		Words:    words,
	}
	program := tea.NewProgram(tui.NewModel(deps),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// loadWords merges the optional custom word file into the built-in list.
func loadWords(log *zap.Logger) ([]alphabet.Word, error) {
	path := config.DefaultWordListPath()
	custom, err := wordlist.LoadWords(path)
	if err != nil {
		if os.IsNotExist(err) {
			return alphabet.Words(), nil
		}
		return nil, fmt.Errorf("failed to load word list %s: %w", path, err)
	}
	log.Info("custom words loaded", zap.String("path", path), zap.Int("count", len(custom)))
	return wordlist.Merge(alphabet.Words(), custom), nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print progress, history and best scores",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsColor, "color", false, "force colored curves")
	return cmd
}

func buildReport(ctx context.Context, a *app) (stats.Report, error) {
	rec := a.progress.Snapshot()
	return stats.BuildReport(ctx, a.store, rec, progress.SortedHistory(rec), a.progress.EffectiveStreak(), reportGames)
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := buildReport(cmd.Context(), a)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	useColor := statsColor
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		useColor = true
	}
	return report.Render(out, outputWidth(out), useColor)
}

func outputWidth(out any) int {
	f, ok := out.(*os.File)
	if !ok {
		return fallbackWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear stored progress",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVar(&resetReflex, "reflex", false, "only clear per-letter reflex status")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if resetReflex {
		a.progress.ResetReflexProgress()
		a.log.Info("reflex progress reset")
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "Reflex progress cleared.")
		return err
	}
	a.progress.ResetProgress()
	a.log.Info("progress reset")
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "Progress cleared.")
	return err
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export progress to an .xlsx workbook",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportOut, "out", "kiril.xlsx", "output file")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	if strings.TrimSpace(exportOut) == "" {
		return fmt.Errorf("--out must not be empty")
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := buildReport(cmd.Context(), a)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if err := export.Save(exportOut, report); err != nil {
		return err
	}
	logErrf("Wrote %s\n", exportOut)
	return nil
}

func newTranslitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "translit TEXT...",
		Short: "Write Turkish text in Cyrillic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), alphabet.Transliterate(strings.Join(args, " ")))
			return err
		},
	}
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if !flagChanged(cmd, name) || value == "" {
		return
	}
	*target = value
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int) {
	if !flagChanged(cmd, name) {
		return
	}
	*target = value
}

func defaultConfigTemplate() string {
	d := config.Defaults()
	return fmt.Sprintf(`# kiril configuration
# Uncomment a value to enable it. The environment variables
# %s / %s / %s / %s override config values,
# and CLI flags override both.

[reflex]
# dwell-seconds = %d      # Seconds to look at a new letter before answering
# lock-streak = %d        # Correct answers in a row that lock a letter

[rain]
# lives = %d

[blitz]
# seconds = %d
# deck = %d

[matching]
# pairs = %d

[hunt]
# seconds = %d

[audio]
# enabled = %t
# volume = %.1f
# speech = %q
# locale = %q

[log]
# level = %q
# file = %q
`,
		config.EnvDB, config.EnvLogLevel, config.EnvLogFile, config.EnvAudio,
		d.DwellSeconds,
		d.LockStreak,
		d.RainLives,
		d.BlitzSeconds,
		d.BlitzDeck,
		d.MatchPairs,
		d.HuntSeconds,
		d.AudioEnabled,
		d.Volume,
		d.SpeechCmd,
		d.SpeechLocale,
		d.LogLevel,
		d.LogPath,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
