//go:build !linux

package doctor

import (
	"github.com/micmonay/keybd_event"

	"baro/hotkey"
)

// The combo listener needs a non-modifier key, so the gesture is
// modifier+Space tapped twice.
func summonKeys() []int { return []int{keybd_event.VK_SPACE} }

func describeGesture(mod hotkey.Key) string { return mod.String() + "+space" }
