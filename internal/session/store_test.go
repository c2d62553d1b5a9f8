package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_GetOrCreate(t *testing.T) {
	st := NewStore(testLogger())

	s, created := st.GetOrCreate(42)
	require.True(t, created)
	require.Equal(t, int64(42), s.UserID)
	require.Equal(t, StateMainMenu, s.State)
	require.True(t, s.Cart.IsEmpty())

	again, created := st.GetOrCreate(42)
	require.False(t, created)
	require.Same(t, s, again)

	other, created := st.GetOrCreate(43)
	require.True(t, created)
	require.NotSame(t, s, other)
	require.Equal(t, 2, st.Len())
}

func TestStore_ConcurrentFirstContact(t *testing.T) {
	st := NewStore(testLogger())

	const callers = 64
	sessions := make([]*Session, callers)
	creations := make([]bool, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessions[i], creations[i] = st.GetOrCreate(7)
		}(i)
	}
	wg.Wait()

	created := 0
	for i := 0; i < callers; i++ {
		require.Same(t, sessions[0], sessions[i])
		if creations[i] {
			created++
		}
	}
	require.Equal(t, 1, created, "exactly one caller must create the session")
	require.Equal(t, 1, st.Len())
}
