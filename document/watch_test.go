package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.txt")
	if err := os.WriteFile(path, []byte("one\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w, err := Watch(ctx, path)
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}

	// Writes to other files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("two\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case _, ok := <-w.Changes():
		if !ok {
			t.Fatal("Changes() closed before the write was reported")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported within 5s")
	}

	cancel()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-w.Changes():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("Changes() not closed after cancel")
		}
	}
}

func TestWatchMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "file.txt")
	if _, err := Watch(context.Background(), path); err == nil {
		t.Error("Watch() in a missing directory should fail")
	}
}
