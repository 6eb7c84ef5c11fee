package search

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/appindex/internal/docid"
	"github.com/kailas-cloud/appindex/internal/domain"
	"github.com/kailas-cloud/appindex/internal/query"
)

// --- Fakes ---

type fakeBackend struct {
	executePage domain.BackendPage
	executeErr  error
	resumePage  domain.BackendPage
	resumeErr   error

	executeCalls int
	resumeCalls  int
	lastLimit    int
	lastScroll   string
	lastQuery    domain.ParsedQuery
}

func (f *fakeBackend) Execute(
	_ context.Context, _ domain.ApplicationScope,
	_ domain.SearchEdge, _ domain.SearchTypes,
	parsed domain.ParsedQuery, limit int,
) (domain.BackendPage, error) {
	f.executeCalls++
	f.lastLimit = limit
	f.lastQuery = parsed
	return f.executePage, f.executeErr
}

func (f *fakeBackend) Resume(_ context.Context, scrollToken string) (domain.BackendPage, error) {
	f.resumeCalls++
	f.lastScroll = scrollToken
	return f.resumePage, f.resumeErr
}

type fakeCursorStore struct {
	entries map[string]string
	putErr  error
	getErr  error
	lastTTL time.Duration
}

func newFakeCursorStore() *fakeCursorStore {
	return &fakeCursorStore{entries: make(map[string]string)}
}

func (f *fakeCursorStore) Put(_ context.Context, cursorID, state string, ttl time.Duration) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.entries[cursorID] = state
	f.lastTTL = ttl
	return nil
}

func (f *fakeCursorStore) Get(_ context.Context, cursorID string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	state, ok := f.entries[cursorID]
	return state, ok, nil
}

type fakeMonitor struct {
	fails     int
	successes int
	lastCtx   string
}

func (f *fakeMonitor) Fail(contextMsg string, _ error) {
	f.fails++
	f.lastCtx = contextMsg
}

func (f *fakeMonitor) Success() { f.successes++ }

// --- Helpers ---

type sessionFixture struct {
	session *Session
	backend *fakeBackend
	cursors *fakeCursorStore
	monitor *fakeMonitor
}

func newFixture(t *testing.T) *sessionFixture {
	t.Helper()
	backend := &fakeBackend{}
	cursors := newFakeCursorStore()
	mon := &fakeMonitor{}
	session := New(query.NewParser(), backend, cursors, mon, 2*time.Minute, nil)
	return &sessionFixture{session: session, backend: backend, cursors: cursors, monitor: mon}
}

func testScope(t *testing.T) domain.ApplicationScope {
	t.Helper()
	scope, err := domain.NewApplicationScope(uuid.New())
	if err != nil {
		t.Fatalf("NewApplicationScope: %v", err)
	}
	return scope
}

func testEdge(t *testing.T) domain.SearchEdge {
	t.Helper()
	edge, err := domain.NewSearchEdge(uuid.New(), "owns")
	if err != nil {
		t.Fatalf("NewSearchEdge: %v", err)
	}
	return edge
}

func makeHitIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = docid.Encode(uuid.New(), uuid.New())
	}
	return ids
}
