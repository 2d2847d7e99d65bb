package contextcache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestCache_StoreFetch(t *testing.T) {
	t.Parallel()

	cache := New()
	userID := uuid.New()

	if got := cache.Fetch(userID, "Quantum Physics"); got != "" {
		t.Errorf("Expected empty text for never-stored pair, got %q", got)
	}

	cache.Store(userID, "Quantum Physics", "wave functions and operators")
	if got := cache.Fetch(userID, "Quantum Physics"); got != "wave functions and operators" {
		t.Errorf("Expected stored text back, got %q", got)
	}

	// Re-upload overwrites
	cache.Store(userID, "Quantum Physics", "entanglement notes")
	if got := cache.Fetch(userID, "Quantum Physics"); got != "entanglement notes" {
		t.Errorf("Expected last stored value, got %q", got)
	}
}

func TestCache_PairsAreIndependent(t *testing.T) {
	t.Parallel()

	cache := New()
	alice := uuid.New()
	bob := uuid.New()

	cache.Store(alice, "Chemistry", "alice chemistry notes")
	cache.Store(alice, "Biology", "alice biology notes")
	cache.Store(bob, "Chemistry", "bob chemistry notes")

	if got := cache.Fetch(alice, "Chemistry"); got != "alice chemistry notes" {
		t.Errorf("Unexpected text for (alice, Chemistry): %q", got)
	}
	if got := cache.Fetch(alice, "Biology"); got != "alice biology notes" {
		t.Errorf("Unexpected text for (alice, Biology): %q", got)
	}
	if got := cache.Fetch(bob, "Chemistry"); got != "bob chemistry notes" {
		t.Errorf("Unexpected text for (bob, Chemistry): %q", got)
	}
	if got := cache.Fetch(bob, "Biology"); got != "" {
		t.Errorf("Expected empty text for (bob, Biology), got %q", got)
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	cache := New()
	userID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			cache.Store(userID, "Mathematics", fmt.Sprintf("notes %d", n))
		}(i)
		go func() {
			defer wg.Done()
			_ = cache.Fetch(userID, "Mathematics")
		}()
	}
	wg.Wait()

	// Last-write-wins: some store must have landed.
	if got := cache.Fetch(userID, "Mathematics"); got == "" {
		t.Error("Expected a stored value after concurrent writes")
	}
}
