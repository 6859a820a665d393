package testsupport

import (
	"context"
	"testing"

	"scribe/internal/config"
	"scribe/internal/history"
)

// MustOpenStore opens a history.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustLoadList seeds a history.List from the store for tests.
func MustLoadList(t testing.TB, store *history.Store) *history.List {
	t.Helper()

	list, err := history.Load(context.Background(), store)
	if err != nil {
		t.Fatalf("history.Load: %v", err)
	}
	return list
}
