package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/kiril/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "kiril.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestKeyValueRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := st.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := st.Put(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := st.Put(ctx, "k", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, ok, err := st.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(value) != `{"a":2}` {
		t.Fatalf("unexpected value %q", value)
	}
	if err := st.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := st.Get(ctx, "k"); ok {
		t.Fatalf("expected key to be deleted")
	}
}

func TestGameResults(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if best, err := st.BestScore(ctx, model.GameRain); err != nil || best != 0 {
		t.Fatalf("expected zero best score on empty table, got %d err=%v", best, err)
	}

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	scores := []int{40, 120, 80}
	for i, score := range scores {
		start := base.Add(time.Duration(i) * time.Minute)
		_, err := st.InsertGameResult(ctx, model.GameResult{
			Game:      model.GameRain,
			Score:     score,
			Level:     1 + score/100,
			Hits:      score / 10,
			StartedAt: start,
			EndedAt:   start.Add(30 * time.Second),
		})
		if err != nil {
			t.Fatalf("insert result: %v", err)
		}
	}
	if _, err := st.InsertGameResult(ctx, model.GameResult{Game: model.GameBlitz, Score: 500, StartedAt: base, EndedAt: base}); err != nil {
		t.Fatalf("insert blitz result: %v", err)
	}

	best, err := st.BestScore(ctx, model.GameRain)
	if err != nil {
		t.Fatalf("best score: %v", err)
	}
	if best != 120 {
		t.Fatalf("expected best 120, got %d", best)
	}

	results, err := st.ListGameResults(ctx, model.GameRain, 2)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Score != 80 || results[1].Score != 120 {
		t.Fatalf("expected newest first, got %+v", results)
	}
	if !results[0].EndedAt.Equal(base.Add(2*time.Minute + 30*time.Second)) {
		t.Fatalf("unexpected ended_at %v", results[0].EndedAt)
	}

	all, err := st.ListGameResults(ctx, "", 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 results, got %d", len(all))
	}
}
