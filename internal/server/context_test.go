package server

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlarsen/workspace-mcp/internal/auth"
)

func newTestContext(t *testing.T) *ServerContext {
	t.Helper()
	manager := auth.NewManager(auth.NewFileStore(t.TempDir()))
	sc := NewServerContext(context.Background(), manager)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

type fakeClient struct {
	account string
}

func TestClientForCachesPerServiceAndAccount(t *testing.T) {
	sc := newTestContext(t)

	var builds atomic.Int64
	build := func(account string) func(context.Context) (*fakeClient, error) {
		return func(context.Context) (*fakeClient, error) {
			builds.Add(1)
			return &fakeClient{account: account}, nil
		}
	}

	a, err := ClientFor(sc, "gmail", "default", build("default"))
	require.NoError(t, err)
	b, err := ClientFor(sc, "gmail", "default", build("default"))
	require.NoError(t, err)
	assert.Same(t, a, b, "same pair must share one client")

	_, err = ClientFor(sc, "drive", "default", build("default"))
	require.NoError(t, err)
	_, err = ClientFor(sc, "gmail", "work@example.com", build("work@example.com"))
	require.NoError(t, err)

	assert.EqualValues(t, 3, builds.Load())
}

func TestClientForBuildError(t *testing.T) {
	sc := newTestContext(t)

	wantErr := errors.New("no credential")
	_, err := ClientFor(sc, "gmail", "default", func(context.Context) (*fakeClient, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	// A failed build must not be cached.
	client, err := ClientFor(sc, "gmail", "default", func(context.Context) (*fakeClient, error) {
		return &fakeClient{account: "default"}, nil
	})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestClientForConcurrent(t *testing.T) {
	sc := newTestContext(t)

	var wg sync.WaitGroup
	clients := make([]*fakeClient, 10)
	for i := range clients {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := ClientFor(sc, "tasks", "default", func(context.Context) (*fakeClient, error) {
				return &fakeClient{account: "default"}, nil
			})
			require.NoError(t, err)
			clients[i] = c
		}()
	}
	wg.Wait()

	for i := 1; i < len(clients); i++ {
		assert.Same(t, clients[0], clients[i])
	}
}

func TestInvalidateClients(t *testing.T) {
	sc := newTestContext(t)

	var builds atomic.Int64
	build := func(context.Context) (*fakeClient, error) {
		builds.Add(1)
		return &fakeClient{}, nil
	}

	_, err := ClientFor(sc, "gmail", "default", build)
	require.NoError(t, err)
	_, err = ClientFor(sc, "drive", "default", build)
	require.NoError(t, err)
	_, err = ClientFor(sc, "gmail", "other", build)
	require.NoError(t, err)

	sc.InvalidateClients("default")

	_, err = ClientFor(sc, "gmail", "default", build)
	require.NoError(t, err)
	_, err = ClientFor(sc, "gmail", "other", build)
	require.NoError(t, err)

	assert.EqualValues(t, 4, builds.Load(), "only the invalidated account rebuilds")
}

func TestShutdownIdempotent(t *testing.T) {
	sc := newTestContext(t)

	assert.False(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())

	select {
	case <-sc.Context().Done():
	default:
		t.Fatal("server context must be cancelled after shutdown")
	}
}

func TestReadOnlyOption(t *testing.T) {
	manager := auth.NewManager(auth.NewFileStore(t.TempDir()))
	sc := NewServerContext(context.Background(), manager, WithReadOnly(true))
	defer sc.Shutdown()
	assert.True(t, sc.ReadOnly())
}
