// Package main provides the CLI entrypoint for pokerdrill.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/pokerdrill/internal/config"
	"github.com/verte-zerg/pokerdrill/internal/drill"
	"github.com/verte-zerg/pokerdrill/internal/model"
	"github.com/verte-zerg/pokerdrill/internal/stats"
	"github.com/verte-zerg/pokerdrill/internal/store"
	"github.com/verte-zerg/pokerdrill/internal/tui"
)

const (
	defaultHandsPerLevel = drill.DefaultHandsPerLevel
	defaultDebounceMs    = 250
	defaultCurveWindow   = 5
	defaultStatsWidth    = 80
	maxActionKeys        = 9
	logPrefix            = "pokerdrill"
	sinceLayout          = "2006-01-02"
)

var (
	drillHandsPerLevel int
	drillDebounceMs    int
	drillUndoLimit     int
	drillActions       []string
	drillSlot          string
	drillSound         bool
	drillPrivacy       bool

	resetYes bool

	statsOutcome string
	statsSince   string
	statsLast    int
	statsWindow  int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pokerdrill",
		Short:         "Poker discipline drill tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDrillCmd,
	}

	rootCmd.Flags().IntVar(&drillHandsPerLevel, "hands-per-level", defaultHandsPerLevel, "hands required to clear a level")
	rootCmd.Flags().IntVar(&drillDebounceMs, "debounce-ms", defaultDebounceMs, "ignore hands logged faster than this (0 disables)")
	rootCmd.Flags().IntVar(&drillUndoLimit, "undo-limit", drill.DefaultUndoLimit, "undo history depth (0 is unlimited)")
	rootCmd.Flags().StringSliceVar(&drillActions, "actions", nil, "action keys in order (default fold,check,call,bet,3bet,4bet)")
	rootCmd.Flags().BoolVar(&drillSound, "sound", false, "ring the terminal bell on level up and run end")
	rootCmd.Flags().BoolVar(&drillPrivacy, "privacy", false, "start with the stats HUD hidden")
	rootCmd.PersistentFlags().StringVar(&drillSlot, "slot", drill.DefaultSlot, "storage slot for the active run")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runDrillCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyDrillConfig(cmd, fileCfg.Drill)

	settings := model.Settings{
		HandsPerLevel: drillHandsPerLevel,
		Debounce:      time.Duration(drillDebounceMs) * time.Millisecond,
		UndoLimit:     drillUndoLimit,
		Actions:       drillActions,
		Slot:          drillSlot,
		Sound:         drillSound,
		Privacy:       drillPrivacy,
	}
	if err := validateConfig(settings); err != nil {
		return err
	}
	actions, err := stats.ParseActions(settings.Actions)
	if err != nil {
		return fmt.Errorf("invalid --actions: %w", err)
	}

	logger, closeLog, err := openFileLogger(config.DefaultLogPath())
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer closeLog()

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error("failed to close db", "err", cerr)
		}
	}()

	d := drill.New(drillOptions(settings, st, logger))
	resumed, err := d.Resume(context.Background())
	if err != nil {
		return fmt.Errorf("failed to resume run: %w", err)
	}
	logger.Info("drill started", "resumed", resumed, "slot", settings.Slot)

	program := tea.NewProgram(tui.NewModel(d, settings, actions, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// drillOptions maps CLI settings onto the core. On the command line zero
// disables debounce and lifts the undo bound.
func drillOptions(settings model.Settings, st *store.Store, logger *log.Logger) drill.Options {
	opts := drill.Options{
		HandsPerLevel: settings.HandsPerLevel,
		Debounce:      settings.Debounce,
		UndoLimit:     settings.UndoLimit,
		Persister:     drill.NewPersister(st, settings.Slot),
		Archiver:      st,
		Logger:        logger,
	}
	if opts.Debounce == 0 {
		opts.Debounce = -1
	}
	if opts.UndoLimit == 0 {
		opts.UndoLimit = -1
	}
	return opts
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

	parts := config.EditorCommand()
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

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the saved run",
		Args:  cobra.NoArgs,
		RunE:  runStatusCmd,
	}
}

func runStatusCmd(cmd *cobra.Command, _ []string) error {
	logger := newCLILogger()
	persister, closeStore, err := openPersister(cmd, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	state, found, err := persister.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}
	return writeStatus(cmd.OutOrStdout(), state, found)
}

func writeStatus(w io.Writer, state model.SessionState, found bool) error {
	if !found {
		_, err := fmt.Fprintln(w, "No saved run.")
		return err
	}
	pct := stats.Percentages(state.Stats)
	lines := []string{
		fmt.Sprintf("Level %d of %d (levels %d-%d)", state.CurrentLevel, state.EndLevel, state.StartLevel, state.EndLevel),
		fmt.Sprintf("Hands in level: %d", state.HandsInLevel),
		fmt.Sprintf("Session hands: %d", state.SessionHands),
		fmt.Sprintf("VPIP %d%%  PFR %d%%  3-Bet %d%%  4-Bet %d%%", pct.VPIP, pct.PFR, pct.ThreeBet, pct.FourBet),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the saved run",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	if !resetYes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("--yes is required when stdin is not a terminal")
		}
		ok, err := promptYesNo(cmd.InOrStdin(), cmd.ErrOrStderr(), "Are you sure? This will reset the game. [y/N] ")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	logger := newCLILogger()
	persister, closeStore, err := openPersister(cmd, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := persister.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear run: %w", err)
	}
	logger.Info("saved run cleared", "slot", drillSlot)
	return nil
}

func promptYesNo(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprint(out, prompt); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// openPersister opens the store and resolves the slot from flags and config.
func openPersister(cmd *cobra.Command, logger *log.Logger) (*drill.Persister, func(), error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "slot", &drillSlot, fileCfg.Drill.Slot)
	if strings.TrimSpace(drillSlot) == "" {
		return nil, nil, fmt.Errorf("--slot must not be empty")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	closeStore := func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error("failed to close db", "err", cerr)
		}
	}
	return drill.NewPersister(st, drillSlot), closeStore, nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show archived runs",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsOutcome, "outcome", "", "outcome filter (completed or failed)")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N runs")
	cmd.Flags().IntVar(&statsWindow, "window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	filter, err := statsFilter(statsOutcome, statsSince, statsLast)
	if err != nil {
		return err
	}
	if statsWindow <= 0 {
		return fmt.Errorf("--window must be > 0")
	}

	logger := newCLILogger()
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error("failed to close db", "err", cerr)
		}
	}()

	report, err := stats.BuildReport(cmd.Context(), st, filter, statsWindow)
	if err != nil {
		return fmt.Errorf("failed to load runs: %w", err)
	}
	return report.Render(cmd.OutOrStdout(), terminalWidth())
}

func statsFilter(outcome, since string, last int) (model.RunFilter, error) {
	outcome = strings.ToLower(strings.TrimSpace(outcome))
	switch outcome {
	case "", model.OutcomeCompleted, model.OutcomeFailed:
	default:
		return model.RunFilter{}, fmt.Errorf("--outcome must be %q or %q", model.OutcomeCompleted, model.OutcomeFailed)
	}
	if last < 0 {
		return model.RunFilter{}, fmt.Errorf("--last must be >= 0")
	}
	filter := model.RunFilter{Outcome: outcome, Last: last}
	if since != "" {
		parsed, err := time.ParseInLocation(sinceLayout, since, time.Local)
		if err != nil {
			return model.RunFilter{}, fmt.Errorf("invalid --since value: %w", err)
		}
		filter.Since = &parsed
	}
	return filter, nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultStatsWidth
	}
	return width
}

func newCLILogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Prefix: logPrefix})
}

// openFileLogger logs to a file while the TUI owns the terminal.
func openFileLogger(path string) (*log.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          logPrefix,
	})
	closeLog := func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close of the log file.
			_ = cerr
		}
	}
	return logger, closeLog, nil
}

func applyDrillConfig(cmd *cobra.Command, cfg config.DrillConfig) {
	applyIntConfig(cmd, "hands-per-level", &drillHandsPerLevel, cfg.HandsPerLevel)
	applyIntConfig(cmd, "debounce-ms", &drillDebounceMs, cfg.DebounceMs)
	applyIntConfig(cmd, "undo-limit", &drillUndoLimit, cfg.UndoLimit)
	applyStringSliceConfig(cmd, "actions", &drillActions, cfg.Actions)
	applyStringConfig(cmd, "slot", &drillSlot, cfg.Slot)
	applyBoolConfig(cmd, "sound", &drillSound, cfg.Sound)
	applyBoolConfig(cmd, "privacy", &drillPrivacy, cfg.Privacy)
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

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringSliceConfig(cmd *cobra.Command, name string, target *[]string, value []string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), value...)
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# pokerdrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[drill]
# hands-per-level = %d     # Hands required to clear a level
# debounce-ms = %d        # Ignore hands logged faster than this (0 disables)
# undo-limit = %d         # Undo history depth (0 is unlimited)
# actions = ["fold", "check", "call", "bet", "3bet", "4bet"]
# slot = %q
# sound = false           # Ring the terminal bell on level up and run end
# privacy = false         # Start with the stats HUD hidden
`,
		defaultHandsPerLevel,
		defaultDebounceMs,
		drill.DefaultUndoLimit,
		drill.DefaultSlot,
	)
}

func validateConfig(cfg model.Settings) error {
	if cfg.HandsPerLevel <= 0 {
		return fmt.Errorf("--hands-per-level must be > 0")
	}
	if cfg.Debounce < 0 {
		return fmt.Errorf("--debounce-ms must be >= 0")
	}
	if cfg.UndoLimit < 0 {
		return fmt.Errorf("--undo-limit must be >= 0")
	}
	if len(cfg.Actions) > maxActionKeys {
		return fmt.Errorf("--actions must name at most %d actions", maxActionKeys)
	}
	if strings.TrimSpace(cfg.Slot) == "" {
		return fmt.Errorf("--slot must not be empty")
	}
	return nil
}
