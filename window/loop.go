package window

import (
	"context"
	"errors"

	"baro/event"
	"baro/log"
)

// UIDo schedules fn on the UI goroutine, e.g. fyne.Do.
type UIDo func(fn func())

// Loop drains a proxy into a controller, one signal at a time, each
// handled on the UI goroutine before the next is taken.
type Loop struct {
	proxy *event.Proxy
	ctrl  *Controller
	do    UIDo
}

func NewLoop(p *event.Proxy, c *Controller, do UIDo) *Loop {
	if do == nil {
		do = func(fn func()) { fn() }
	}
	return &Loop{proxy: p, ctrl: c, do: do}
}

// Run returns nil on a Quit signal, ctx.Err() on cancellation, and
// event.ErrClosed when the proxy is closed underneath it.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.proxy.Done():
			return event.ErrClosed
		case sig := <-l.proxy.Recv():
			if sig.Kind == event.KindSummon || sig.Kind == event.KindTrayClick {
				log.Summon(sig.Source)
			}

			errc := make(chan error, 1)
			l.do(func() { errc <- l.ctrl.Handle(sig) })

			var err error
			select {
			case err = <-errc:
			case <-ctx.Done():
				return ctx.Err()
			}
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if err != nil {
				log.Warnf("signal %s: %v", sig, err)
			}
		}
	}
}
