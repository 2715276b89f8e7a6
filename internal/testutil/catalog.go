package testutil

import (
	"testing"

	"github.com/gagan0803/cook-proj/internal/catalog"
)

func NewTestCatalog(t *testing.T) *catalog.Store {
	t.Helper()

	store, err := catalog.OpenInMemory()
	if err != nil {
		t.Fatalf("opening test catalog: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
	})

	return store
}
