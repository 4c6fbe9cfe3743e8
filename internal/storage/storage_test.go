package storage

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lehigh-university-libraries/tropy-archive/internal/models"
)

func TestRunStore(t *testing.T) {
	store := New()

	if _, ok := store.Get("missing"); ok {
		t.Error("Expected missing run to be absent")
	}

	run := &models.ExportRun{ID: "run-1", Collection: "opensource"}
	store.Set(run.ID, run)

	got, ok := store.Get("run-1")
	if !ok {
		t.Fatal("Expected run-1 to be stored")
	}
	if got.Collection != "opensource" {
		t.Errorf("Expected collection opensource, got %s", got.Collection)
	}

	store.Delete("run-1")
	if _, ok := store.Get("run-1"); ok {
		t.Error("Expected run-1 to be deleted")
	}
}

func TestRunStoreListNewestFirst(t *testing.T) {
	store := New()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	store.Set("old", &models.ExportRun{ID: "old", CreatedAt: base})
	store.Set("new", &models.ExportRun{ID: "new", CreatedAt: base.Add(time.Hour)})
	store.Set("mid", &models.ExportRun{ID: "mid", CreatedAt: base.Add(time.Minute)})

	runs := store.List()
	expected := []string{"new", "mid", "old"}
	if len(runs) != len(expected) {
		t.Fatalf("Expected %d runs, got %d", len(expected), len(runs))
	}
	for i, id := range expected {
		if runs[i].ID != id {
			t.Errorf("Expected run %d to be %s, got %s", i, id, runs[i].ID)
		}
	}
}

func TestRunStoreConcurrentAccess(t *testing.T) {
	store := New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("run-%d", i)
			store.Set(id, &models.ExportRun{ID: id})
			store.List()
		}(i)
	}
	wg.Wait()

	if got := len(store.List()); got != 20 {
		t.Errorf("Expected 20 runs, got %d", got)
	}
}
