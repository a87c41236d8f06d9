package ipc

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"baro/event"
)

type recordingSink struct {
	mu   sync.Mutex
	sigs []event.Signal
	err  error
}

func (r *recordingSink) Send(sig event.Signal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sigs = append(r.sigs, sig)
	return nil
}

func (r *recordingSink) got() []event.Signal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.Signal(nil), r.sigs...)
}

func socketPath(t *testing.T) string {
	t.Helper()
	// keep it short: sun_path is ~108 bytes
	dir, err := os.MkdirTemp("", "baro")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "s.sock")
}

func startServer(t *testing.T, sink event.Sender) string {
	t.Helper()
	path := socketPath(t)
	srv := NewServer(path, sink)
	if err := srv.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { srv.Close() })
	return path
}

func TestParseMessage(t *testing.T) {
	tests := []struct {
		msg  string
		kind event.Kind
		on   bool
	}{
		{"show", event.KindSummon, false},
		{"hide", event.KindDismiss, false},
		{"gesture:on", event.KindToggleGesture, true},
		{" gesture:off\n", event.KindToggleGesture, false},
		{"quit", event.KindQuit, false},
	}
	for _, tt := range tests {
		sig, err := ParseMessage(tt.msg)
		if err != nil {
			t.Errorf("%q: %v", tt.msg, err)
			continue
		}
		if sig.Kind != tt.kind || sig.On != tt.on {
			t.Errorf("%q = %v, want kind %v on=%v", tt.msg, sig, tt.kind, tt.on)
		}
	}
	if _, err := ParseMessage("launcher"); err == nil {
		t.Error("unknown message accepted")
	}
}

func TestRoundTrip(t *testing.T) {
	sink := &recordingSink{}
	path := startServer(t, sink)

	for _, msg := range []string{MsgShow, MsgGestureOff, MsgQuit} {
		if err := Send(path, msg); err != nil {
			t.Fatalf("send %s: %v", msg, err)
		}
	}

	got := sink.got()
	if len(got) != 3 {
		t.Fatalf("got %d signals", len(got))
	}
	if got[0].Kind != event.KindSummon || got[0].Source != "ipc" {
		t.Errorf("first = %v", got[0])
	}
	if got[1].Kind != event.KindToggleGesture || got[1].On {
		t.Errorf("second = %v", got[1])
	}
	if got[2].Kind != event.KindQuit {
		t.Errorf("third = %v", got[2])
	}
}

func TestUnknownMessageReplyIsError(t *testing.T) {
	path := startServer(t, &recordingSink{})
	if err := Send(path, "reboot"); err == nil {
		t.Fatal("expected error")
	}
}

func TestClosedSinkReported(t *testing.T) {
	path := startServer(t, &recordingSink{err: event.ErrClosed})
	err := Send(path, MsgShow)
	if err == nil || err.Error() != event.ErrClosed.Error() {
		t.Fatalf("err = %v", err)
	}
}

func TestSendWithoutServer(t *testing.T) {
	if err := Send(socketPath(t), MsgShow); err == nil {
		t.Fatal("expected dial error")
	}
}

func TestStaleSocketReplaced(t *testing.T) {
	path := socketPath(t)
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatal(err)
	}
	srv := NewServer(path, &recordingSink{})
	if err := srv.Start(); err != nil {
		t.Fatal(err)
	}
	defer srv.Close()
	if err := Send(path, MsgHide); err != nil {
		t.Fatal(err)
	}
}

func TestCloseRemovesSocket(t *testing.T) {
	path := socketPath(t)
	srv := NewServer(path, &recordingSink{})
	if err := srv.Start(); err != nil {
		t.Fatal(err)
	}
	if err := srv.Start(); err == nil {
		t.Error("second Start succeeded")
	}
	if err := srv.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("socket still present: %v", err)
	}
	srv.Close()
}

func TestSilentClientDoesNotWedgeServer(t *testing.T) {
	sink := &recordingSink{}
	path := startServer(t, sink)

	idle, err := net.Dial("unix", path)
	if err != nil {
		t.Fatal(err)
	}
	defer idle.Close()

	done := make(chan error, 1)
	go func() { done <- Send(path, MsgShow) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server blocked by idle client")
	}
}
