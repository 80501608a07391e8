package domain

import "strings"

type User struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// avatarColors is the fixed ANSI-256 palette for user avatars. The palette
// size must stay stable: AvatarColor hashes the name into an index, and
// resizing it would recolor every existing avatar.
var avatarColors = []string{
	"196", "220", "40", "33", "63", "135", "205", "208",
	"37", "51", "198", "154", "42", "39", "99", "171",
}

// Initials derives the one- or two-letter avatar text from the user name:
// first letters of the first two words, or the first two letters of a
// single word. Empty names render as "?".
func (u User) Initials() string {
	words := strings.Fields(u.Name)
	if len(words) == 0 {
		return "?"
	}
	if len(words) == 1 {
		r := []rune(words[0])
		if len(r) == 1 {
			return strings.ToUpper(string(r[0]))
		}
		return strings.ToUpper(string(r[:2]))
	}
	first := []rune(words[0])
	second := []rune(words[1])
	return strings.ToUpper(string(first[0]) + string(second[0]))
}

// AvatarColor picks a deterministic palette color for the user name, so
// the same user gets the same color in every view and every session.
func (u User) AvatarColor() string {
	if u.Name == "" {
		return avatarColors[0]
	}
	var hash int32
	for _, r := range u.Name {
		hash = r + (hash << 5) - hash
	}
	if hash < 0 {
		hash = -hash
	}
	return avatarColors[int(hash)%len(avatarColors)]
}
