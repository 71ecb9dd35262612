package history

import (
	"context"
	"testing"
	"time"

	"tugboat/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.StateDir = t.TempDir()
	return &cfg
}

func TestStoreAppendAndRecent(t *testing.T) {
	cfg := testConfig(t)

	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	records := []Record{
		{RunID: "run-1", Tracker: "BLU", UploadName: "Film.2023.1080p.BluRay.x264-GRP", Candidates: 4, Survivors: 0, CheckedAt: base},
		{RunID: "run-1", Tracker: "AITHER", UploadName: "Film.2023.1080p.BluRay.x264-GRP", Candidates: 2, Survivors: 1, MatchedName: "Film.2023.1080p.BluRay.x264-OTHER", MatchedReason: "filename", TrumpTargets: 1, CheckedAt: base.Add(time.Minute)},
	}
	for _, rec := range records {
		if err := store.Append(ctx, rec); err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
	}

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent returned %d records, want 2", len(got))
	}
	// Newest first.
	if got[0].Tracker != "AITHER" || got[1].Tracker != "BLU" {
		t.Errorf("order = %s, %s, want AITHER then BLU", got[0].Tracker, got[1].Tracker)
	}
	if got[0].MatchedReason != "filename" || got[0].TrumpTargets != 1 {
		t.Errorf("record = %+v, want matched reason and trump target count preserved", got[0])
	}
	if !got[0].CheckedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("checked at = %v, want %v", got[0].CheckedAt, base.Add(time.Minute))
	}
}

func TestStoreRecentLimit(t *testing.T) {
	cfg := testConfig(t)

	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := store.Append(ctx, Record{RunID: "run", Tracker: "BLU", UploadName: "x"}); err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
	}

	got, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Recent(3) returned %d records", len(got))
	}
}

func TestStoreSingleInstanceLock(t *testing.T) {
	cfg := testConfig(t)

	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer store.Close()

	if _, err := Open(cfg); err == nil {
		t.Error("second Open succeeded while the lock is held")
	}
}

func TestStoreReopen(t *testing.T) {
	cfg := testConfig(t)

	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := store.Append(context.Background(), Record{RunID: "run", Tracker: "BLU", UploadName: "x"}); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reopened, err := Open(cfg)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("records after reopen = %d, want 1", len(got))
	}
}
