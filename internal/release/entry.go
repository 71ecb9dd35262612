package release

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidEntry is returned when a candidate is neither a name string nor
// a mapping with the Entry fields. It is the dupe checker's only hard
// failure mode; malformed field values inside a mapping degrade instead.
var ErrInvalidEntry = errors.New("invalid candidate entry")

// Entry is the canonical shape of one existing release found on a tracker.
type Entry struct {
	Name        string
	Size        *int64 // bytes; nil when absent or not coercible
	Files       []string
	FileCount   int
	Trumpable   bool
	Link        string
	Download    string
	Flags       []string
	ID          string // tracker torrent id; empty when absent
	Type        string // tracker category/type code
	Res         string // tracker resolution code
	Internal    bool
	BDInfo      string
	Description string
}

// HasFlag reports whether the entry carries the given hint flag.
func (e *Entry) HasFlag(flag string) bool {
	for _, f := range e.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// AddFlag appends a hint flag unless it is already present.
func (e *Entry) AddFlag(flag string) {
	if !e.HasFlag(flag) {
		e.Flags = append(e.Flags, flag)
	}
}

// ParseCandidate normalizes a raw tracker search result into an Entry.
// Accepted shapes are a bare name string and a mapping with any subset of
// the Entry fields; anything else fails with ErrInvalidEntry. Field values
// that cannot be coerced default rather than fail, so one malformed tracker
// response never aborts a whole dupe check.
func ParseCandidate(v any) (Entry, error) {
	switch c := v.(type) {
	case string:
		return Entry{Name: c}, nil
	case Entry:
		return c, nil
	case *Entry:
		if c == nil {
			return Entry{}, fmt.Errorf("%w: nil entry", ErrInvalidEntry)
		}
		return *c, nil
	case map[string]any:
		return entryFromMap(c), nil
	default:
		return Entry{}, fmt.Errorf("%w: got %T", ErrInvalidEntry, v)
	}
}

// ParseCandidates normalizes a whole candidate list, failing on the first
// invalid element.
func ParseCandidates(in []any) ([]Entry, error) {
	out := make([]Entry, 0, len(in))
	for _, v := range in {
		entry, err := ParseCandidate(v)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

func entryFromMap(m map[string]any) Entry {
	entry := Entry{
		Name:        CoerceString(m["name"]),
		Size:        CoerceInt(m["size"]),
		Trumpable:   coerceBool(m["trumpable"]),
		Link:        CoerceString(m["link"]),
		Download:    CoerceString(m["download"]),
		ID:          CoerceString(m["id"]),
		Type:        CoerceString(m["type"]),
		Res:         CoerceString(m["res"]),
		Internal:    coerceBool(m["internal"]),
		BDInfo:      CoerceString(m["bd_info"]),
		Description: CoerceString(m["description"]),
	}

	if flags, ok := m["flags"].([]any); ok {
		for _, f := range flags {
			if s := CoerceString(f); s != "" {
				entry.Flags = append(entry.Flags, s)
			}
		}
	} else if flags, ok := m["flags"].([]string); ok {
		entry.Flags = append(entry.Flags, flags...)
	}

	switch files := m["files"].(type) {
	case []any:
		for _, f := range files {
			entry.Files = append(entry.Files, CoerceString(f))
		}
	case []string:
		entry.Files = append(entry.Files, files...)
	case string:
		if files != "" {
			entry.Files = []string{files}
		}
	}
	entry.FileCount = len(entry.Files)

	if raw, ok := m["file_count"]; ok {
		if n := CoerceInt(raw); n != nil {
			entry.FileCount = int(*n)
		} else {
			entry.FileCount = 0
		}
	}

	return entry
}

// CoerceInt converts loosely typed numeric values (JSON numbers, numeric
// strings) to an integer, returning nil for anything it cannot interpret.
func CoerceInt(v any) *int64 {
	switch n := v.(type) {
	case nil:
		return nil
	case int:
		val := int64(n)
		return &val
	case int64:
		return &n
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
		val := int64(n)
		return &val
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return nil
		}
		return &parsed
	default:
		return nil
	}
}

// CoerceString renders ids and similar loosely typed scalar fields as
// strings; nil becomes empty.
func CoerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		if s == math.Trunc(s) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

func coerceBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int:
		return b != 0
	case int64:
		return b != 0
	case float64:
		return b != 0
	case string:
		return b == "1" || strings.EqualFold(b, "true")
	default:
		return false
	}
}
