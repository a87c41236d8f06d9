package event

import (
	"errors"
	"sync"

	"baro/log"
)

var (
	ErrClosed = errors.New("event: proxy closed")
	ErrFull   = errors.New("event: proxy full")
)

// Sender is the producer side of a Proxy.
type Sender interface {
	Send(sig Signal) error
}

// Proxy is a many-producer, single-consumer queue into the UI
// goroutine. Signals from one producer arrive in send order.
type Proxy struct {
	ch        chan Signal
	done      chan struct{}
	closeOnce sync.Once
}

func NewProxy(buffer int) *Proxy {
	if buffer < 1 {
		buffer = 1
	}
	return &Proxy{
		ch:   make(chan Signal, buffer),
		done: make(chan struct{}),
	}
}

// Send queues sig, blocking while the buffer is full. It fails with
// ErrClosed once the consumer side has been torn down.
func (p *Proxy) Send(sig Signal) error {
	select {
	case <-p.done:
		return ErrClosed
	default:
	}
	select {
	case p.ch <- sig:
		return nil
	case <-p.done:
		return ErrClosed
	}
}

// Post is Send for callers that have nothing better to do with a
// failure than log it.
func (p *Proxy) Post(sig Signal) {
	if err := p.Send(sig); err != nil {
		log.Warnf("dropped signal %s: %v", sig, err)
	}
}

// TrySend queues sig only if the buffer has room. Producers running on
// the UI goroutine must use it: the consumer may be parked waiting for
// that goroutine, so a blocking send there never returns.
func (p *Proxy) TrySend(sig Signal) error {
	select {
	case <-p.done:
		return ErrClosed
	default:
	}
	select {
	case p.ch <- sig:
		return nil
	default:
		return ErrFull
	}
}

// TryPost is TrySend that logs and drops on failure.
func (p *Proxy) TryPost(sig Signal) {
	if err := p.TrySend(sig); err != nil {
		log.Warnf("dropped signal %s: %v", sig, err)
	}
}

func (p *Proxy) Recv() <-chan Signal   { return p.ch }
func (p *Proxy) Done() <-chan struct{} { return p.done }

// Close releases blocked senders and makes later sends fail. The
// signal channel itself is never closed, so racing senders cannot panic.
func (p *Proxy) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}
