// Package main provides the CLI entrypoint for kanaflow.
package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/kanaflow/internal/catalog"
	"github.com/verte-zerg/kanaflow/internal/config"
	"github.com/verte-zerg/kanaflow/internal/deck"
	"github.com/verte-zerg/kanaflow/internal/logging"
	"github.com/verte-zerg/kanaflow/internal/model"
	"github.com/verte-zerg/kanaflow/internal/prefs"
	"github.com/verte-zerg/kanaflow/internal/session"
	"github.com/verte-zerg/kanaflow/internal/speech"
	"github.com/verte-zerg/kanaflow/internal/stats"
	"github.com/verte-zerg/kanaflow/internal/store"
	"github.com/verte-zerg/kanaflow/internal/tui"
)

const terminalWidthBackup = 80

var (
	practiceMode       string
	practiceRows       string
	practiceSmartFocus bool
	practiceAudio      bool
	practiceSeed       int64
	practiceReport     bool

	tableMode string
	vocabRows string

	statsReset bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kanaflow",
		Short:         "TUI kana drill",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	defaults := config.Defaults()
	rootCmd.Flags().StringVar(&practiceMode, "mode", "", "hiragana, katakana or mixed (default: last used)")
	rootCmd.Flags().StringVar(&practiceRows, "rows", "", "comma-separated rows to drill, e.g. Vowels,K,S (default: all)")
	rootCmd.Flags().BoolVar(&practiceSmartFocus, "smart-focus", defaults.SmartFocus, "bring missed kana back a few cards later")
	rootCmd.Flags().BoolVar(&practiceAudio, "audio", defaults.Audio.Enabled, "pronounce listening cards")
	rootCmd.Flags().Int64Var(&practiceSeed, "seed", 0, "random seed for reproducible decks (0: random)")
	rootCmd.Flags().BoolVar(&practiceReport, "report", true, "print the last session after exit")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTableCmd())
	rootCmd.AddCommand(newVocabCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newSayCmd())

	return rootCmd
}

// loadSettings merges defaults with the config file.
func loadSettings() (model.Config, config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.Defaults()
	fileCfg.Apply(&cfg)
	return cfg, fileCfg, nil
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, fileCfg, err := loadSettings()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "mode", &practiceMode, fileCfg.Practice.Mode)
	applyRowsConfig(cmd, "rows", &practiceRows, fileCfg.Practice.Rows)
	applyBoolConfig(cmd, "smart-focus", &practiceSmartFocus, fileCfg.Practice.SmartFocus)
	applyBoolConfig(cmd, "audio", &practiceAudio, fileCfg.Audio.Enabled)

	ctx := context.Background()
	repo, closeRepo, storeErr := openPreferences()
	defer closeRepo()
	if practiceMode == "" {
		stored, err := repo.Load(ctx)
		if err != nil {
			stored = prefs.Defaults()
		}
		practiceMode = string(stored.PreferredMode)
	}

	cfg.Mode = strings.ToLower(strings.TrimSpace(practiceMode))
	cfg.Rows = splitRows(practiceRows)
	cfg.SmartFocus = practiceSmartFocus
	cfg.Audio.Enabled = practiceAudio
	cfg.Seed = practiceSeed
	if err := config.NewValidator().Validate(cfg); err != nil {
		return err
	}

	log, closer, err := logging.New(cfg.LogLevel, config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()
	if storeErr != nil {
		log.WithError(storeErr).Warn("preferences will not be saved")
	}

	svc, err := prefs.NewService(ctx, repo, log)
	if err != nil {
		return err
	}
	mode, err := catalog.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	rows, err := catalog.ParseSelection(strings.Join(cfg.Rows, ","))
	if err != nil {
		return err
	}

	vocab, err := loadVocabulary(cfg.VocabularyPath)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.WithFields(logrus.Fields{
		"mode":        mode,
		"rows":        rows.String(),
		"smart_focus": cfg.SmartFocus,
		"vocabulary":  len(vocab),
		"seed":        seed,
	}).Info("starting practice")

	pron := newPronouncer(cfg.Audio, log)
	sess := session.New(session.Options{
		Builder:    deck.NewWithSource(rand.NewSource(seed), vocab),
		Pronouncer: pron,
		Logger:     log,
		Mode:       mode,
		Rows:       rows,
		SmartFocus: cfg.SmartFocus,
		OnFinish: func(sum session.Summary) {
			if err := svc.RecordSession(ctx, sum); err != nil {
				log.WithError(err).Warn("failed to record session")
			}
		},
		OnModeChange: func(m catalog.Mode) {
			if err := svc.SetPreferredMode(ctx, m); err != nil {
				log.WithError(err).Warn("failed to store preferred mode")
			}
		},
	})

	ui := tui.NewModel(tui.Options{
		Session: sess,
		Prefs:   svc,
		Logger:  log,
		Audio:   cfg.Audio.Enabled,
	})
	program := tea.NewProgram(ui, tea.WithAltScreen())
	_, err = program.Run()
	pron.Wait()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if !practiceReport {
		return nil
	}
	return printSessionReport(cmd.OutOrStdout(), sess.Summary(), sess.History())
}

// openPreferences opens the preferences database. When it cannot be opened,
// preferences live in memory for this run and the error is returned alongside.
func openPreferences() (prefs.Repository, func(), error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return prefs.NewMemory(), func() {}, fmt.Errorf("failed to open db: %w", err)
	}
	return st, func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}, nil
}

// printSessionReport prints the last session shown in the TUI, if any.
func printSessionReport(w io.Writer, sum session.Summary, history []session.AnswerRecord) error {
	if sum.Attempts == 0 {
		return nil
	}
	if err := stats.RenderSummary(w, sum); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return stats.RenderHistory(w, history)
}

type pronouncer interface {
	session.Pronouncer
	Wait()
}

func newPronouncer(audio model.AudioConfig, log logrus.FieldLogger) pronouncer {
	if !audio.Enabled {
		return speech.Nop{}
	}
	return newPlayer(audio, log)
}

func newPlayer(audio model.AudioConfig, log logrus.FieldLogger) *speech.Player {
	return speech.NewPlayer(speech.Options{
		ClipURL:  audio.ClipURL,
		CacheDir: config.DefaultAudioCacheDir(),
		Player:   audio.Player,
		TTS:      audio.TTS,
		Logger:   log,
	})
}

func loadVocabulary(path string) ([]catalog.Vocabulary, error) {
	vocab := catalog.BuiltinVocabulary()
	if path == "" {
		return vocab, nil
	}
	extra, err := catalog.LoadVocabulary(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}
	return catalog.MergeVocabulary(vocab, extra), nil
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
		if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
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

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the kana chart",
		Args:  cobra.NoArgs,
		RunE:  runTableCmd,
	}
	cmd.Flags().StringVar(&tableMode, "mode", string(catalog.ModeMixed), "hiragana, katakana or mixed")
	return cmd
}

func runTableCmd(cmd *cobra.Command, _ []string) error {
	mode, err := catalog.ParseMode(tableMode)
	if err != nil {
		return err
	}
	width := terminalWidthBackup
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	return stats.RenderChart(cmd.OutOrStdout(), catalog.KanaForMode(mode), width)
}

func newVocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "List vocabulary usable with the selected rows",
		Args:  cobra.NoArgs,
		RunE:  runVocabCmd,
	}
	cmd.Flags().StringVar(&vocabRows, "rows", "", "comma-separated rows (default: all)")
	return cmd
}

func runVocabCmd(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadSettings()
	if err != nil {
		return err
	}
	sel, err := catalog.ParseSelection(vocabRows)
	if err != nil {
		return err
	}
	vocab, err := loadVocabulary(cfg.VocabularyPath)
	if err != nil {
		return err
	}
	words := catalog.FilterVocabulary(vocab, sel)
	if len(words) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No vocabulary uses only the selected rows.")
		return err
	}
	rows := make([][]string, 0, len(words))
	for _, w := range words {
		rows = append(rows, []string{w.Word, w.Romaji, w.Meaning, catalog.Selection(w.Rows).String()})
	}
	for _, line := range stats.FormatTable([]string{"Word", "Romaji", "Meaning", "Rows"}, rows, nil) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stored progress",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsReset, "reset", false, "clear stored progress and preferences")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if statsReset {
		if err := st.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset progress: %w", err)
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "Progress cleared.")
		return err
	}
	p, err := st.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}
	return stats.RenderPreferences(cmd.OutOrStdout(), p)
}

func newSayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "say <text>",
		Short: "Pronounce kana or a word",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSayCmd,
	}
}

func runSayCmd(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadSettings()
	if err != nil {
		return err
	}
	if err := config.NewValidator().Validate(cfg); err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	player := newPlayer(cfg.Audio, logging.Discard())
	if err := player.Say(ctx, strings.Join(args, " ")); err != nil {
		return fmt.Errorf("failed to pronounce: %w", err)
	}
	return nil
}

// splitRows splits a row list, spelling known rows canonically so that
// validation only reports unknown names.
func splitRows(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if r, err := catalog.ParseRow(part); err == nil {
			part = string(r)
		}
		out = append(out, part)
	}
	return out
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

func applyRowsConfig(cmd *cobra.Command, name string, target *string, value *[]string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = strings.Join(*value, ",")
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

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
