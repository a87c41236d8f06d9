package event

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestProxyFIFOWithinSender(t *testing.T) {
	p := NewProxy(8)
	const n = 200

	go func() {
		for i := 0; i < n; i++ {
			if err := p.Send(RepaintAfter(time.Duration(i))); err != nil {
				t.Errorf("send %d: %v", i, err)
				return
			}
		}
	}()

	for i := 0; i < n; i++ {
		select {
		case sig := <-p.Recv():
			if sig.Delay != time.Duration(i) {
				t.Fatalf("received %v at position %d", sig.Delay, i)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out at %d", i)
		}
	}
}

func TestProxyPerSenderOrderWithManySenders(t *testing.T) {
	p := NewProxy(4)
	const senders, per = 4, 50

	var wg sync.WaitGroup
	for s := 0; s < senders; s++ {
		wg.Add(1)
		go func(s int) {
			defer wg.Done()
			for i := 0; i < per; i++ {
				p.Send(Signal{Kind: KindRepaintAfter, Delay: time.Duration(i), Source: string(rune('a' + s))})
			}
		}(s)
	}

	last := map[string]time.Duration{}
	for i := 0; i < senders*per; i++ {
		select {
		case sig := <-p.Recv():
			if prev, ok := last[sig.Source]; ok && sig.Delay <= prev {
				t.Fatalf("sender %s: %v after %v", sig.Source, sig.Delay, prev)
			}
			last[sig.Source] = sig.Delay
		case <-time.After(time.Second):
			t.Fatalf("timed out after %d signals", i)
		}
	}
	wg.Wait()
}

func TestProxySendAfterClose(t *testing.T) {
	p := NewProxy(1)
	p.Close()
	p.Close()

	if err := p.Send(Summon("test")); !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
	// Post logs and drops; it must not panic or block.
	p.Post(Summon("test"))
}

func TestProxyCloseReleasesBlockedSender(t *testing.T) {
	p := NewProxy(1)
	if err := p.Send(Dismiss()); err != nil {
		t.Fatal(err)
	}

	errc := make(chan error, 1)
	go func() { errc <- p.Send(Dismiss()) }()

	select {
	case err := <-errc:
		t.Fatalf("send on full proxy returned early: %v", err)
	case <-time.After(30 * time.Millisecond):
	}

	p.Close()
	select {
	case err := <-errc:
		if !errors.Is(err, ErrClosed) {
			t.Errorf("err = %v, want ErrClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("blocked sender not released by Close")
	}
}

func TestProxyTrySendNeverBlocks(t *testing.T) {
	p := NewProxy(1)
	if err := p.TrySend(Summon("test")); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- p.TrySend(TrayClick()) }()
	select {
	case err := <-done:
		if !errors.Is(err, ErrFull) {
			t.Errorf("err = %v, want ErrFull", err)
		}
	case <-time.After(time.Second):
		t.Fatal("TrySend blocked on a full proxy")
	}
	p.TryPost(TrayClick())

	if sig := <-p.Recv(); sig.Kind != KindSummon {
		t.Errorf("queued %s, want the first summon", sig)
	}
	p.Close()
	if err := p.TrySend(Dismiss()); !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}

func TestSignalConstructorsCopyPaths(t *testing.T) {
	paths := []string{"/a", "/b"}
	sig := FileDropped(paths)
	paths[0] = "/changed"
	if sig.Paths[0] != "/a" {
		t.Errorf("signal shares caller's slice: %v", sig.Paths)
	}
	if RepaintAfter(-time.Second).Delay != 0 {
		t.Error("negative delay not clamped")
	}
	if got := ToggleGesture(true, "tray").String(); got != "toggle_gesture(true)" {
		t.Errorf("String() = %q", got)
	}
}
