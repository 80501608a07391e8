package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitials(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Ana García", "AG"},
		{"Ana García López", "AG"},
		{"ana", "AN"},
		{"a", "A"},
		{"  Ana   García  ", "AG"},
		{"", "?"},
		{"   ", "?"},
	}
	for _, tc := range cases {
		u := User{Name: tc.name}
		assert.Equal(t, tc.want, u.Initials(), "name=%q", tc.name)
	}
}

func TestAvatarColor_Deterministic(t *testing.T) {
	u := User{Name: "Ana García"}
	first := u.AvatarColor()
	assert.Equal(t, first, u.AvatarColor())
	assert.Contains(t, avatarColors, first)
}

func TestAvatarColor_EmptyName(t *testing.T) {
	assert.Equal(t, avatarColors[0], User{}.AvatarColor())
}
