// Package prefs keeps the learner's long-lived preferences.
package prefs

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/kanaflow/internal/catalog"
	"github.com/verte-zerg/kanaflow/internal/logging"
	"github.com/verte-zerg/kanaflow/internal/session"
)

// Preferences is everything that survives a restart.
type Preferences struct {
	BestStreak    int
	TotalMastered int
	PreferredMode catalog.Mode
}

// Defaults returns the preferences of a new learner.
func Defaults() Preferences {
	return Preferences{PreferredMode: catalog.ModeHiragana}
}

// Patch is a partial update. Nil fields are left as stored.
type Patch struct {
	BestStreak    *int
	TotalMastered *int
	PreferredMode *catalog.Mode
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.BestStreak == nil && p.TotalMastered == nil && p.PreferredMode == nil
}

// Apply returns prefs with the patch's non-nil fields written over it.
func (p Patch) Apply(prefs Preferences) Preferences {
	if p.BestStreak != nil {
		prefs.BestStreak = *p.BestStreak
	}
	if p.TotalMastered != nil {
		prefs.TotalMastered = *p.TotalMastered
	}
	if p.PreferredMode != nil {
		prefs.PreferredMode = *p.PreferredMode
	}
	return prefs
}

// Repository loads and saves preferences. Missing keys load as Defaults.
type Repository interface {
	Load(ctx context.Context) (Preferences, error)
	Save(ctx context.Context, patch Patch) error
}

// UpdateBestStreak returns the new best streak after a session with the given
// number of correct answers. It never decreases.
func UpdateBestStreak(best, correct int) int {
	return max(best, correct)
}

// Service applies session outcomes to a repository and keeps the last known
// preferences in memory.
type Service struct {
	repo  Repository
	log   logrus.FieldLogger
	prefs Preferences
}

// NewService loads the current preferences from repo.
func NewService(ctx context.Context, repo Repository, log logrus.FieldLogger) (*Service, error) {
	p, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Service{repo: repo, log: log, prefs: p}, nil
}

// Preferences returns the last known preferences.
func (s *Service) Preferences() Preferences {
	return s.prefs
}

// RecordSession folds a finished session into the preferences. Only changed
// keys are written.
func (s *Service) RecordSession(ctx context.Context, sum session.Summary) error {
	var patch Patch
	if best := UpdateBestStreak(s.prefs.BestStreak, sum.Correct); best != s.prefs.BestStreak {
		patch.BestStreak = &best
	}
	if sum.Perfect() {
		mastered := s.prefs.TotalMastered + 1
		patch.TotalMastered = &mastered
	}
	return s.save(ctx, patch, logrus.Fields{"session": sum.ID, "correct": sum.Correct, "attempts": sum.Attempts})
}

// SetPreferredMode stores mode as the preferred mode.
func (s *Service) SetPreferredMode(ctx context.Context, mode catalog.Mode) error {
	return s.save(ctx, Patch{PreferredMode: &mode}, logrus.Fields{"mode": mode})
}

func (s *Service) save(ctx context.Context, patch Patch, fields logrus.Fields) error {
	if patch.Empty() {
		return nil
	}
	if err := s.repo.Save(ctx, patch); err != nil {
		s.log.WithFields(fields).WithError(err).Warn("preferences not saved")
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	s.prefs = patch.Apply(s.prefs)
	s.log.WithFields(fields).Debug("preferences saved")
	return nil
}
