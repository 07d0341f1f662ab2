package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Go 1.24 Released!", "go-124-released"},
		{"  spaced   out  ", "spaced-out"},
		{"ALL CAPS", "all-caps"},
		{"emoji 🎉 party", "emoji--party"},
	}
	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			require.Equal(t, tc.want, Slugify(tc.title))
		})
	}
}

func TestCanModerate(t *testing.T) {
	owner := &User{ID: "user-1", Role: RoleUser}
	stranger := &User{ID: "user-2", Role: RoleUser}
	admin := &User{ID: "user-3", Role: RoleAdmin}

	require.True(t, owner.CanModerate("user-1"))
	require.False(t, stranger.CanModerate("user-1"))
	require.True(t, admin.CanModerate("user-1"))
}

func TestLikedBy(t *testing.T) {
	c := &Comment{Likes: []string{"user-1", "user-2"}}
	require.True(t, c.LikedBy("user-1"))
	require.False(t, c.LikedBy("user-9"))
}

func TestRoleValid(t *testing.T) {
	require.True(t, RoleUser.Valid())
	require.True(t, RoleAdmin.Valid())
	require.False(t, Role("superuser").Valid())
}
