package repository

import (
	"sync"
	"testing"

	"smartchef/internal/models"
)

func TestMemoryStaging_PutGetRemove(t *testing.T) {
	st := NewMemoryStaging()

	if _, ok := st.Get("nope"); ok {
		t.Fatalf("empty staging returned a session")
	}

	st.Put(models.CookingSession{ID: "s1", Notes: "v1"})
	st.Put(models.CookingSession{ID: "s1", Notes: "v2"}) // overwrite

	got, ok := st.Get("s1")
	if !ok || got.Notes != "v2" {
		t.Fatalf("expected overwritten session, got %+v", got)
	}

	st.Remove("s1")
	if _, ok := st.Get("s1"); ok {
		t.Fatalf("session survived Remove")
	}
	st.Remove("s1") // idempotent
}

func TestMemoryStaging_GetReturnsCopy(t *testing.T) {
	st := NewMemoryStaging()
	st.Put(models.CookingSession{ID: "s1", Notes: "original"})

	got, _ := st.Get("s1")
	got.Notes = "mutated"

	again, _ := st.Get("s1")
	if again.Notes != "original" {
		t.Fatalf("stored session mutated through returned pointer")
	}
}

func TestMemoryStaging_ConcurrentAccess(t *testing.T) {
	st := NewMemoryStaging()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				st.Put(models.CookingSession{ID: "shared"})
				st.Get("shared")
				st.Remove("shared")
			}
		}()
	}
	wg.Wait()
}
