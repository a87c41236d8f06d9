package doctor

import "baro/hotkey"

// evdev sees bare modifiers, so the modifier alone is tapped.
func summonKeys() []int { return nil }

func describeGesture(mod hotkey.Key) string { return mod.String() }
