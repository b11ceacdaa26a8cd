package screen

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCommit_OnlyNewestTicketApplies(t *testing.T) {
	s := New[string]("tasks")
	first := s.Begin()
	second := s.Begin()

	require.False(t, s.Commit(first, "old"))
	_, ok := s.Last()
	require.False(t, ok)

	require.True(t, s.Commit(second, "new"))
	last, ok := s.Last()
	require.True(t, ok)
	require.Equal(t, "new", last)

	// a late completion of the first load still cannot overwrite
	require.False(t, s.Commit(first, "late"))
	last, _ = s.Last()
	require.Equal(t, "new", last)
}

func TestRun_FailureKeepsLastCommit(t *testing.T) {
	ctx := context.Background()
	s := New[int]("projects")

	out := Run(ctx, s, func(context.Context) (int, error) { return 42, nil })
	require.NoError(t, out.Err)
	require.Equal(t, 42, out.Value)
	require.False(t, out.Stale)

	boom := errors.New("backend down")
	out = Run(ctx, s, func(context.Context) (int, error) { return 0, boom })
	require.ErrorIs(t, out.Err, boom)
	require.True(t, out.Stale)
	require.Equal(t, 42, out.Value)

	last, _ := s.Last()
	require.Equal(t, 42, last)
}

func TestRun_FailureWithNothingCommitted(t *testing.T) {
	out := Run(context.Background(), New[int]("x"), func(context.Context) (int, error) { return 0, errors.New("x") })
	require.Error(t, out.Err)
	require.False(t, out.Stale)
}

func TestRun_SlowLoadIsSuperseded(t *testing.T) {
	ctx := context.Background()
	s := New[string]("tasks")

	release := make(chan struct{})
	started := make(chan struct{})
	var wg sync.WaitGroup
	var slow Outcome[string]
	wg.Add(1)
	go func() {
		defer wg.Done()
		slow = Run(ctx, s, func(context.Context) (string, error) {
			close(started)
			<-release
			return "page 1", nil
		})
	}()

	<-started
	fast := Run(ctx, s, func(context.Context) (string, error) { return "page 2", nil })
	close(release)
	wg.Wait()

	require.False(t, fast.Superseded)
	require.True(t, slow.Superseded)
	last, _ := s.Last()
	require.Equal(t, "page 2", last)
}

func TestRegistry_PerSessionScreens(t *testing.T) {
	r := NewRegistry(time.Minute)

	a := For[string](r, "s1", "tasks")
	require.Same(t, a, For[string](r, "s1", "tasks"))
	require.NotSame(t, a, For[string](r, "s2", "tasks"))

	For[int](r, "s1", "projects")
	require.Equal(t, 3, r.Len())

	require.Equal(t, 2, r.Forget("s1"))
	require.Equal(t, 1, r.Len())
}
