package doctor

import (
	"fmt"
	"runtime"
	"time"

	"github.com/micmonay/keybd_event"

	"baro/hotkey"
)

// tapper presses and releases the summon key through a virtual keyboard.
type tapper struct {
	kb keybd_event.KeyBonding
}

func newTapper(mod hotkey.Key) (*tapper, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, err
	}
	switch mod {
	case hotkey.KeyAlt:
		kb.HasALT(true)
	case hotkey.KeyCtrl:
		kb.HasCTRL(true)
	case hotkey.KeyShift:
		kb.HasSHIFT(true)
	default:
		return nil, fmt.Errorf("no synthetic support for %s", mod)
	}
	if keys := summonKeys(); len(keys) > 0 {
		kb.SetKeys(keys...)
	}
	if runtime.GOOS == "linux" {
		// uinput devices take a moment to appear under /dev/input
		time.Sleep(2 * time.Second)
	}
	return &tapper{kb: kb}, nil
}

func (t *tapper) tap() error {
	if err := t.kb.Press(); err != nil {
		return err
	}
	time.Sleep(30 * time.Millisecond)
	return t.kb.Release()
}

func (t *tapper) doubleTap(gap time.Duration) error {
	if err := t.tap(); err != nil {
		return err
	}
	time.Sleep(gap)
	return t.tap()
}
