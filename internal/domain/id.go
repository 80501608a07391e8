package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an opaque entity identifier. The server emits numeric ids today
// but the client never does arithmetic on them, so they are carried as
// strings and compared as strings (route params arrive as text anyway).
type ID string

func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts both a JSON number and a JSON string.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits the id as a JSON number when it is numeric, because
// the server rejects string ids in request bodies.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if isDigits(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
