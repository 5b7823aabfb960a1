package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// registerAll registers ids 0..n-1 and returns their nicknames in order.
func registerAll(t *testing.T, r *Registry, n int) []string {
	t.Helper()

	nicks := make([]string, 0, n)
	for i := range n {
		b := r.Register(UserID(i))
		require.Equal(t, EventConnected, b.Kind)
		nicks = append(nicks, b.Actor)
	}
	return nicks
}

func mustChannel(t *testing.T, r *Registry, owner UserID, title string, inviteOnly bool) {
	t.Helper()

	_, err := r.AddChannel(owner, title, inviteOnly)
	require.NoError(t, err)
}

func mustJoin(t *testing.T, r *Registry, id UserID, title string) {
	t.Helper()

	_, err := r.AddUser(id, title)
	require.NoError(t, err)
}
