package instance

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestAcquireWritesPid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "baro.pid")
	l, err := Acquire(path)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != strconv.Itoa(os.Getpid()) {
		t.Errorf("pid file = %q", data)
	}

	l.Release()
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("pid file not removed")
	}
}

func TestAcquireLiveOwner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baro.pid")
	// the parent (go test) is alive and is not us
	os.WriteFile(path, []byte(strconv.Itoa(os.Getppid())), 0644)

	if _, err := Acquire(path); !errors.Is(err, ErrRunning) {
		t.Fatalf("err = %v, want ErrRunning", err)
	}
}

func TestAcquireStalePid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baro.pid")
	os.WriteFile(path, []byte("999999999"), 0644)

	l, err := Acquire(path)
	if err != nil {
		t.Fatalf("stale pid not taken over: %v", err)
	}
	l.Release()
}

func TestAcquireGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baro.pid")
	os.WriteFile(path, []byte("not a pid"), 0644)
	if _, err := Acquire(path); err != nil {
		t.Fatal(err)
	}
}

func TestReleaseKeepsForeignPid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baro.pid")
	l, err := Acquire(path)
	if err != nil {
		t.Fatal(err)
	}
	os.WriteFile(path, []byte("12345"), 0644)
	l.Release()
	if _, err := os.Stat(path); err != nil {
		t.Error("foreign pid file removed")
	}
	var nilLock *Lock
	nilLock.Release()
}

func TestAcquireConcurrentStartsOneWinner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baro.pid")

	const n = 8
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		wins  int
		other []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Acquire(path)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case !errors.Is(err, ErrRunning):
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("%d acquisitions succeeded, want 1", wins)
	}
	if len(other) > 0 {
		t.Errorf("unexpected errors: %v", other)
	}
}

func TestAcquireFreshEmptyFileIsHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baro.pid")
	os.WriteFile(path, nil, 0644)
	if _, err := Acquire(path); !errors.Is(err, ErrRunning) {
		t.Fatalf("err = %v, want ErrRunning", err)
	}

	old := time.Now().Add(-time.Minute)
	os.Chtimes(path, old, old)
	l, err := Acquire(path)
	if err != nil {
		t.Fatalf("abandoned empty pid file not taken over: %v", err)
	}
	l.Release()
}
