package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// localDateTimeLayout is the zone-less format the server uses for
// created_at / due_date fields.
const localDateTimeLayout = "2006-01-02T15:04:05"

// Timestamp wraps time.Time with tolerant decoding: the server emits
// zone-less LocalDateTime strings, sometimes with fractional seconds,
// while fixtures and future server versions use RFC 3339.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp { return Timestamp{Time: t} }

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		t.Time = parsed
		return nil
	}
	// Drop fractional seconds before the zone-less parse.
	if i := strings.IndexByte(s, '.'); i > 0 {
		s = s[:i]
	}
	parsed, err := time.Parse(localDateTimeLayout, s)
	if err != nil {
		return fmt.Errorf("decoding timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// ParseDate parses a YYYY-MM-DD user input into a Timestamp.
func ParseDate(s string) (Timestamp, error) {
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{Time: parsed}, nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(localDateTimeLayout))
}
