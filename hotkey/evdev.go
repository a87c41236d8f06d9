package hotkey

import "encoding/binary"

const (
	evKey      = 1
	keyRelease = 0
	keyPress   = 1
	keyRepeat  = 2

	keyLCtrl  = 29
	keyLShift = 42
	keyRShift = 54
	keyLAlt   = 56
	keyRCtrl  = 97
	keyRAlt   = 100
	keyLMeta  = 125
	keyRMeta  = 126
)

// input_event is 24 bytes on 64-bit Linux:
// timeval (16 bytes) + type (2) + code (2) + value (4)
const inputEventSize = 24

func evdevKey(code uint16) Key {
	switch code {
	case keyLAlt, keyRAlt:
		return KeyAlt
	case keyLCtrl, keyRCtrl:
		return KeyCtrl
	case keyLShift, keyRShift:
		return KeyShift
	case keyLMeta, keyRMeta:
		return KeySuper
	}
	return KeyOther
}

// decodeFrames walks whole input_event frames in buf and reports key
// presses and releases. Trailing partial frames, non-key events and
// autorepeat are skipped.
func decodeFrames(buf []byte, emit func(KeyEvent)) {
	for i := 0; i+inputEventSize <= len(buf); i += inputEventSize {
		evType := binary.LittleEndian.Uint16(buf[i+16:])
		evCode := binary.LittleEndian.Uint16(buf[i+18:])
		evValue := int32(binary.LittleEndian.Uint32(buf[i+20:]))

		if evType != evKey {
			continue
		}

		var t EventType
		switch evValue {
		case keyPress:
			t = KeyDown
		case keyRelease:
			t = KeyUp
		default:
			continue
		}
		emit(KeyEvent{Key: evdevKey(evCode), Type: t, Code: evCode})
	}
}
