package hotkey

import "golang.design/x/hotkey"

func platformModifier(k Key) hotkey.Modifier {
	switch k {
	case KeyCtrl:
		return hotkey.ModCtrl
	case KeyShift:
		return hotkey.ModShift
	case KeySuper:
		return hotkey.ModWin
	}
	return hotkey.ModAlt
}
