// Package model defines shared data structures.
package model

// Config defines practice settings after file values and flags are merged.
type Config struct {
	Mode           string      `toml:"mode" validate:"required,oneof=hiragana katakana mixed"`
	Rows           []string    `toml:"rows" validate:"dive,oneof=Vowels K S T N H M Y R W N-final"`
	SmartFocus     bool        `toml:"smart-focus"`
	Seed           int64       `toml:"seed"`
	VocabularyPath string      `toml:"file"`
	LogLevel       string      `toml:"level" validate:"required,oneof=debug info warn error"`
	Audio          AudioConfig `toml:"audio"`
}

// AudioConfig defines how cards are pronounced.
type AudioConfig struct {
	Enabled bool   `toml:"enabled"`
	Player  string `toml:"player" validate:"required_if=Enabled true"`
	TTS     string `toml:"tts"`
	ClipURL string `toml:"clip-url" validate:"omitempty,url"`
}
