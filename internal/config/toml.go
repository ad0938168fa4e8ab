// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/kanaflow/internal/model"
)

// DefaultClipURL is where single-kana recordings are fetched from.
const DefaultClipURL = "https://cdn.jsdelivr.net/gh/Kuuuube/kana-quiz-sounds@master/audio/0"

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice   PracticeConfig   `toml:"practice"`
	Audio      AudioConfig      `toml:"audio"`
	Log        LogConfig        `toml:"log"`
	Vocabulary VocabularyConfig `toml:"vocabulary"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Mode       *string   `toml:"mode"`
	Rows       *[]string `toml:"rows"`
	SmartFocus *bool     `toml:"smart-focus"`
}

// AudioConfig maps pronunciation settings.
type AudioConfig struct {
	Enabled *bool   `toml:"enabled"`
	Player  *string `toml:"player"`
	TTS     *string `toml:"tts"`
	ClipURL *string `toml:"clip-url"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// VocabularyConfig points at extra vocabulary.
type VocabularyConfig struct {
	File *string `toml:"file"`
}

// Defaults returns the settings used when neither the file nor flags set a value.
func Defaults() model.Config {
	return model.Config{
		Mode:           "hiragana",
		LogLevel:       "info",
		VocabularyPath: DefaultVocabularyPath(),
		Audio: model.AudioConfig{
			Enabled: true,
			Player:  "mpv --no-video --really-quiet",
			TTS:     "espeak-ng -v ja -s 120",
			ClipURL: DefaultClipURL,
		},
	}
}

// Apply writes every value set in the file over cfg.
func (f FileConfig) Apply(cfg *model.Config) {
	if f.Practice.Mode != nil {
		cfg.Mode = *f.Practice.Mode
	}
	if f.Practice.Rows != nil {
		cfg.Rows = append([]string(nil), (*f.Practice.Rows)...)
	}
	if f.Practice.SmartFocus != nil {
		cfg.SmartFocus = *f.Practice.SmartFocus
	}
	if f.Audio.Enabled != nil {
		cfg.Audio.Enabled = *f.Audio.Enabled
	}
	if f.Audio.Player != nil {
		cfg.Audio.Player = *f.Audio.Player
	}
	if f.Audio.TTS != nil {
		cfg.Audio.TTS = *f.Audio.TTS
	}
	if f.Audio.ClipURL != nil {
		cfg.Audio.ClipURL = *f.Audio.ClipURL
	}
	if f.Log.Level != nil {
		cfg.LogLevel = *f.Log.Level
	}
	if f.Vocabulary.File != nil {
		cfg.VocabularyPath = ExpandHome(*f.Vocabulary.File)
	}
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Template is written when the config command creates a new file.
const Template = `# kanaflow configuration

[practice]
# mode = "hiragana"         # hiragana | katakana | mixed
# rows = ["Vowels", "K"]    # empty or missing means every row
# smart-focus = false       # bring missed kana back four cards later

[audio]
# enabled = true
# player = "mpv --no-video --really-quiet"
# tts = "espeak-ng -v ja -s 120"
# clip-url = "` + DefaultClipURL + `"

[log]
# level = "info"            # debug | info | warn | error

[vocabulary]
# file = "~/.config/kanaflow/vocabulary.toml"
`
