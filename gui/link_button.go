//go:build gui

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// linkButton is a button with a right-click menu.
type linkButton struct {
	widget.Button
	onSecondary func(*fyne.PointEvent)
}

func newLinkButton(label string, tapped func(), secondary func(*fyne.PointEvent)) *linkButton {
	b := &linkButton{onSecondary: secondary}
	b.Text = label
	b.OnTapped = tapped
	b.Importance = widget.LowImportance
	b.ExtendBaseWidget(b)
	return b
}

func (b *linkButton) TappedSecondary(e *fyne.PointEvent) {
	if b.onSecondary != nil {
		b.onSecondary(e)
	}
}
