package release

import (
	"errors"
	"testing"
)

func TestParseCandidate(t *testing.T) {
	t.Run("bare name string", func(t *testing.T) {
		entry, err := ParseCandidate("Film.2023.1080p.BluRay.x264-GRP")
		if err != nil {
			t.Fatalf("ParseCandidate returned error: %v", err)
		}
		if entry.Name != "Film.2023.1080p.BluRay.x264-GRP" {
			t.Errorf("Name = %q", entry.Name)
		}
		if entry.Size != nil {
			t.Error("Size should be nil for a bare name")
		}
	})

	t.Run("full mapping", func(t *testing.T) {
		entry, err := ParseCandidate(map[string]any{
			"name":      "Film.2023.1080p.BluRay.x264-GRP",
			"size":      float64(9_000_000_000),
			"files":     []any{"film.mkv", "sample.mkv"},
			"trumpable": true,
			"link":      "https://tracker.example/t/7",
			"id":        float64(7),
			"type":      "Encode",
			"res":       "1080p",
			"internal":  1,
		})
		if err != nil {
			t.Fatalf("ParseCandidate returned error: %v", err)
		}
		if entry.Size == nil || *entry.Size != 9_000_000_000 {
			t.Errorf("Size = %v, want 9000000000", entry.Size)
		}
		if entry.FileCount != 2 {
			t.Errorf("FileCount = %d, want 2 (derived from files)", entry.FileCount)
		}
		if entry.ID != "7" {
			t.Errorf("ID = %q, want numeric id rendered as string", entry.ID)
		}
		if !entry.Trumpable || !entry.Internal {
			t.Error("trumpable/internal flags not coerced")
		}
	})

	t.Run("explicit file_count overrides derived", func(t *testing.T) {
		entry, err := ParseCandidate(map[string]any{
			"name":       "Pack.S01.1080p.WEB-DL-GRP",
			"files":      []any{"e01.mkv"},
			"file_count": "8",
		})
		if err != nil {
			t.Fatalf("ParseCandidate returned error: %v", err)
		}
		if entry.FileCount != 8 {
			t.Errorf("FileCount = %d, want 8", entry.FileCount)
		}
	})

	t.Run("malformed field degrades instead of failing", func(t *testing.T) {
		entry, err := ParseCandidate(map[string]any{
			"name":       "Film.2023.1080p.BluRay.x264-GRP",
			"size":       "not a number",
			"file_count": "also not",
		})
		if err != nil {
			t.Fatalf("ParseCandidate returned error: %v", err)
		}
		if entry.Size != nil {
			t.Errorf("Size = %v, want nil", entry.Size)
		}
		if entry.FileCount != 0 {
			t.Errorf("FileCount = %d, want 0", entry.FileCount)
		}
	})

	t.Run("unsupported shape", func(t *testing.T) {
		if _, err := ParseCandidate(3.14); !errors.Is(err, ErrInvalidEntry) {
			t.Errorf("error = %v, want ErrInvalidEntry", err)
		}
	})
}

func TestParseCandidatesFailsFast(t *testing.T) {
	_, err := ParseCandidates([]any{"ok", 42, "never reached"})
	if !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("error = %v, want ErrInvalidEntry", err)
	}
}

func TestEntryFlags(t *testing.T) {
	var e Entry
	if e.HasFlag("x") {
		t.Error("empty entry should have no flags")
	}
	e.AddFlag("x")
	e.AddFlag("x")
	if len(e.Flags) != 1 {
		t.Errorf("Flags = %v, want single occurrence", e.Flags)
	}
}
