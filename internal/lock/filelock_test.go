package lock

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func Test_Acquire_CreatesLockFile(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "nested", "todo.txt.lock")

	l, err := Acquire(lockPath)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer l.Release()

	if _, err := os.Stat(lockPath); err != nil {
		t.Fatalf("lock file should exist after acquire: %v", err)
	}
	if l.Path() != lockPath {
		t.Errorf("expected path %q, got %q", lockPath, l.Path())
	}
}

func Test_TryAcquire_HeldReturnsNil(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "todo.lock")

	first, err := Acquire(lockPath)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	second, err := TryAcquire(lockPath)
	if err != nil {
		t.Fatalf("TryAcquire failed: %v", err)
	}
	if second != nil {
		second.Release()
		t.Fatal("TryAcquire should return nil while the lock is held")
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	third, err := TryAcquire(lockPath)
	if err != nil {
		t.Fatalf("TryAcquire after release failed: %v", err)
	}
	if third == nil {
		t.Fatal("TryAcquire should succeed after release")
	}
	third.Release()
}

func Test_Acquire_BlocksUntilRelease(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "todo.lock")

	first, err := Acquire(lockPath)
	if err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}

	acquired := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		second, err := Acquire(lockPath)
		if err != nil {
			t.Errorf("second Acquire failed: %v", err)
			return
		}
		close(acquired)
		second.Release()
	}()

	select {
	case <-acquired:
		t.Fatal("second Acquire should block while the lock is held")
	case <-time.After(50 * time.Millisecond):
	}

	first.Release()

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("second Acquire did not proceed after release")
	}
	wg.Wait()
}

func Test_Release_Twice(t *testing.T) {
	l, err := Acquire(filepath.Join(t.TempDir(), "todo.lock"))
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("first Release failed: %v", err)
	}
	if err := l.Release(); err != nil {
		t.Errorf("second Release should be a no-op, got %v", err)
	}
}
