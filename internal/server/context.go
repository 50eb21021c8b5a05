package server

import (
	"context"
	"sync"

	"github.com/rlarsen/workspace-mcp/internal/auth"
	"github.com/rlarsen/workspace-mcp/internal/instrumentation"
)

// ServerContext holds the shared state of the MCP server: the credential
// manager, instrumentation, and cached per-account Google API clients.
type ServerContext struct {
	ctx     context.Context
	cancel  context.CancelFunc
	manager *auth.Manager
	metrics *instrumentation.Metrics

	readOnly bool

	mu       sync.RWMutex
	clients  map[clientKey]any
	shutdown bool
}

type clientKey struct {
	service string
	account string
}

// ContextOption configures a ServerContext.
type ContextOption func(*ServerContext)

// WithMetrics wires the metrics recorder into the server context.
func WithMetrics(m *instrumentation.Metrics) ContextOption {
	return func(sc *ServerContext) {
		if m != nil {
			sc.metrics = m
		}
	}
}

// WithReadOnly marks the server as read-only: tools that mutate user data are
// not registered.
func WithReadOnly(readOnly bool) ContextOption {
	return func(sc *ServerContext) { sc.readOnly = readOnly }
}

// NewServerContext creates a server context over the credential manager.
// Google API clients are built lazily on first use per (service, account).
func NewServerContext(ctx context.Context, manager *auth.Manager, opts ...ContextOption) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)
	sc := &ServerContext{
		ctx:     shutdownCtx,
		cancel:  cancel,
		manager: manager,
		metrics: &instrumentation.Metrics{},
		clients: make(map[clientKey]any),
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc
}

// Context returns the server's lifetime context, cancelled on shutdown.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Manager returns the credential manager.
func (sc *ServerContext) Manager() *auth.Manager {
	return sc.manager
}

// Metrics returns the metrics recorder. Never nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// ReadOnly reports whether mutating tools are disabled.
func (sc *ServerContext) ReadOnly() bool {
	return sc.readOnly
}

// IsShutdown reports whether the server has been shut down.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context and drops cached clients. Idempotent.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.shutdown {
		return nil
	}
	sc.shutdown = true
	sc.clients = make(map[clientKey]any)
	sc.cancel()
	return nil
}

// InvalidateClients drops the cached clients for an account across all
// services, forcing a rebuild on next use. Called after reauthorization.
func (sc *ServerContext) InvalidateClients(account string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	for key := range sc.clients {
		if key.account == account {
			delete(sc.clients, key)
		}
	}
}

// ClientFor returns the cached client for a (service, account) pair, building
// and caching it on first use. Service clients are safe for concurrent use,
// so one instance per pair is shared by all tool handlers.
func ClientFor[T any](sc *ServerContext, service, account string, build func(ctx context.Context) (T, error)) (T, error) {
	key := clientKey{service: service, account: account}

	sc.mu.RLock()
	cached, ok := sc.clients[key]
	sc.mu.RUnlock()
	if ok {
		return cached.(T), nil
	}

	client, err := build(sc.ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if existing, ok := sc.clients[key]; ok {
		return existing.(T), nil
	}
	sc.clients[key] = client
	return client, nil
}
