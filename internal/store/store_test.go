package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/kanaflow/internal/catalog"
	"github.com/verte-zerg/kanaflow/internal/prefs"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "kanaflow.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return st
}

func TestLoadDefaults(t *testing.T) {
	st := openTestStore(t)
	got, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != prefs.Defaults() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestSavePartial(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	best, mastered := 12, 3
	mode := catalog.ModeMixed
	if err := st.Save(ctx, prefs.Patch{BestStreak: &best, TotalMastered: &mastered, PreferredMode: &mode}); err != nil {
		t.Fatalf("save: %v", err)
	}
	best = 15
	if err := st.Save(ctx, prefs.Patch{BestStreak: &best}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := prefs.Preferences{BestStreak: 15, TotalMastered: 3, PreferredMode: catalog.ModeMixed}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestPersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kanaflow.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	mode := catalog.ModeKatakana
	if err := st.Save(ctx, prefs.Patch{PreferredMode: &mode}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	st, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = st.Close() }()
	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.PreferredMode != catalog.ModeKatakana {
		t.Fatalf("expected katakana, got %q", got.PreferredMode)
	}
}

func TestLoadIgnoresBadValues(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	if _, err := st.db.Exec(`INSERT INTO preferences (key, value) VALUES ('best_streak', 'lots'), ('preferred_mode', 'cyrillic'), ('total_mastered', '4')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := prefs.Preferences{TotalMastered: 4, PreferredMode: catalog.ModeHiragana}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	best := 9
	if err := st.Save(ctx, prefs.Patch{BestStreak: &best}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.BestStreak != 0 {
		t.Fatalf("expected reset streak, got %d", got.BestStreak)
	}
}

func TestServiceOverStore(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	svc, err := prefs.NewService(ctx, st, nil)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	if err := svc.SetPreferredMode(ctx, catalog.ModeKatakana); err != nil {
		t.Fatalf("set mode: %v", err)
	}
	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.PreferredMode != catalog.ModeKatakana {
		t.Fatalf("expected katakana, got %q", got.PreferredMode)
	}
}
