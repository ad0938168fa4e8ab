// Package speech pronounces kana and words through external commands.
//
// A single kana is played from a prerecorded clip fetched once from the clip
// server and cached on disk. Words, unknown glyphs and failed clips go to the
// text-to-speech command instead.
package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/kanaflow/internal/catalog"
	"github.com/verte-zerg/kanaflow/internal/logging"
)

const (
	requestTimeout = 10 * time.Second
	playTimeout    = 15 * time.Second
)

// Runner executes an external command and waits for it.
type Runner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Options configures a Player.
type Options struct {
	ClipURL  string // base URL; clips live at <ClipURL>/<romaji>.mp3
	CacheDir string
	Player   string // command line that plays a file given as last argument
	TTS      string // command line that speaks text given as last argument
	Client   *http.Client
	Runner   Runner
	Logger   logrus.FieldLogger
}

// Player implements session.Pronouncer.
type Player struct {
	opts Options
	log  logrus.FieldLogger

	mu sync.Mutex // serializes downloads and playback
	wg sync.WaitGroup

	cancelMu sync.Mutex
	cancel   context.CancelFunc // stops the latest Pronounce
}

// NewPlayer returns a Player. Missing options fall back to working defaults.
func NewPlayer(opts Options) *Player {
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: requestTimeout}
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Player{opts: opts, log: opts.Logger}
}

// Pronounce plays text in the background and returns immediately. Playback
// started by an earlier call is stopped. Failures are logged.
func (p *Player) Pronounce(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout+playTimeout)
	p.cancelMu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.cancel = cancel
	p.cancelMu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer cancel()
		err := p.Say(ctx, text)
		if err != nil && !errors.Is(err, context.Canceled) {
			p.log.WithField("text", text).WithError(err).Warn("pronounce failed")
		}
	}()
}

// Wait blocks until background playback has finished.
func (p *Player) Wait() {
	p.wg.Wait()
}

// Say pronounces text and waits for playback to end.
func (p *Player) Say(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	if romaji, ok := singleKana(text); ok && p.opts.ClipURL != "" && p.opts.Player != "" {
		path, err := p.clip(ctx, romaji)
		if err == nil {
			err = p.run(ctx, p.opts.Player, path)
		}
		if err == nil || errors.Is(err, context.Canceled) {
			return err
		}
		p.log.WithFields(logrus.Fields{"text": text, "romaji": romaji}).WithError(err).Debug("clip failed, using tts")
	}
	if p.opts.TTS == "" {
		return errors.New("no tts command configured")
	}
	return p.run(ctx, p.opts.TTS, text)
}

func singleKana(text string) (string, bool) {
	if utf8.RuneCountInString(text) != 1 {
		return "", false
	}
	return catalog.RomajiFor(text)
}

// ClipPath returns the cache location of the clip for romaji.
func (p *Player) ClipPath(romaji string) string {
	return filepath.Join(p.opts.CacheDir, romaji+".mp3")
}

func (p *Player) clip(ctx context.Context, romaji string) (string, error) {
	path := p.ClipPath(romaji)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.MkdirAll(p.opts.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create clip cache: %w", err)
	}

	url := strings.TrimRight(p.opts.ClipURL, "/") + "/" + romaji + ".mp3"
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := p.opts.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch clip: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort body close.
			_ = cerr
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(p.opts.CacheDir, romaji+"-*.part")
	if err != nil {
		return "", fmt.Errorf("failed to create clip file: %w", err)
	}
	_, err = io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		if rerr := os.Remove(tmp.Name()); rerr != nil {
			// Best-effort cleanup.
			_ = rerr
		}
		return "", fmt.Errorf("failed to write clip: %w", err)
	}
	p.log.WithFields(logrus.Fields{"romaji": romaji, "path": path}).Debug("clip cached")
	return path, nil
}

func (p *Player) run(ctx context.Context, command, arg string) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return errors.New("empty command")
	}
	ctx, cancel := context.WithTimeout(ctx, playTimeout)
	defer cancel()
	args := append(fields[1:len(fields):len(fields)], arg)
	if err := p.opts.Runner(ctx, fields[0], args...); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return context.Canceled
		}
		return fmt.Errorf("failed to run %s: %w", fields[0], err)
	}
	return nil
}

// Nop is a pronouncer that stays silent.
type Nop struct{}

// Pronounce does nothing.
func (Nop) Pronounce(string) {}

// Wait returns immediately.
func (Nop) Wait() {}
