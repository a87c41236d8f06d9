//go:build gui

// Package gui is the fyne window surface: a search box over a grid of
// link buttons, plus the system tray.
package gui

import (
	"context"
	"errors"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/go-gl/glfw/v3.3/glfw"

	"baro/event"
	"baro/links"
	"baro/log"
	"baro/session"
	"baro/tray"
	"baro/window"
)

const iconSize = 48

type Options struct {
	Width  int
	Height int
}

type App struct {
	fyneApp fyne.App
	window  fyne.Window
	sess    *session.Session
	ctx     context.Context

	search *widget.Entry
	tags   *widget.Select
	grid   *fyne.Container
	status *widget.Label
	tag    string

	rendering bool

	timerMu sync.Mutex
	timer   *time.Timer
}

// New creates the fyne app and its window. It must run on the main
// thread; nothing is shown until the controller asks.
func New(sess *session.Session, opts Options) *App {
	return newApp(app.NewWithID("io.baro.app"), sess, opts)
}

func newApp(fa fyne.App, sess *session.Session, opts Options) *App {
	a := &App{fyneApp: fa, sess: sess, ctx: context.Background()}
	a.fyneApp.Settings().SetTheme(&baroTheme{})

	a.window = a.fyneApp.NewWindow("baro")
	a.window.Resize(fyne.NewSize(float32(opts.Width), float32(opts.Height)))
	a.window.CenterOnScreen()
	a.window.SetCloseIntercept(func() {
		if ctrl := a.sess.Controller(); ctrl != nil {
			ctrl.CloseRequested()
		}
	})
	a.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		paths := make([]string, 0, len(uris))
		for _, u := range uris {
			paths = append(paths, u.Path())
		}
		if ctrl := a.sess.Controller(); ctrl != nil {
			if err := ctrl.Handle(event.FileDropped(paths)); err != nil {
				log.Warnf("drop: %v", err)
			}
		}
	})

	a.search = widget.NewEntry()
	a.search.SetPlaceHolder("Search")
	a.search.OnChanged = func(string) {
		if !a.rendering {
			a.render()
		}
	}
	a.search.OnSubmitted = func(query string) {
		err := a.sess.LaunchTop(a.ctx, query, a.tag)
		switch {
		case errors.Is(err, links.ErrNotFound):
			a.status.SetText("no match")
		case err != nil:
			a.status.SetText(a.sess.Status())
		}
	}

	a.tags = widget.NewSelect(nil, func(tag string) {
		if tag == allTags {
			tag = ""
		}
		a.tag = tag
		if !a.rendering {
			a.render()
		}
	})
	a.tags.PlaceHolder = allTags

	a.grid = container.NewGridWithColumns(sess.Columns)
	a.status = widget.NewLabel("")

	top := container.NewBorder(nil, nil, nil, a.tags, a.search)
	a.window.SetContent(container.NewBorder(top, a.status, nil, nil, container.NewVScroll(a.grid)))

	a.setupTray()
	return a
}

const allTags = "All"

func (a *App) Name() string { return "gui" }

func (a *App) Show() { a.window.Show() }
func (a *App) Hide() { a.window.Hide() }

func (a *App) Focus() {
	a.window.RequestFocus()
	if _, ok := a.fyneApp.Driver().(desktop.Driver); !ok {
		return
	}
	if w := glfw.GetCurrentContext(); w != nil {
		w.Focus()
	}
}

// RequestRepaint replaces the pending frame timer. Frames are always
// posted back through fyne.Do so they run after the current handler.
func (a *App) RequestRepaint(mode window.RepaintMode, at time.Time) {
	a.timerMu.Lock()
	defer a.timerMu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	var d time.Duration
	switch mode {
	case window.ModeWait:
		return
	case window.ModeWaitUntil:
		d = time.Until(at)
	}
	a.timer = time.AfterFunc(d, func() { fyne.Do(a.frame) })
}

func (a *App) FilesDropped(paths []string) {
	l, err := a.sess.AddDropped(paths)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.status.SetText("added " + l.DisplayName())
}

func (a *App) ForgetImage(key string) error {
	return a.sess.Icons.ForgetImage(key)
}

func (a *App) Do(fn func()) { fyne.Do(fn) }

func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			a.Quit()
		case <-done:
		}
	}()
	a.fyneApp.Run()
	return nil
}

func (a *App) Quit() {
	if a.fyneApp != nil {
		a.fyneApp.Quit()
	}
}

func (a *App) frame() {
	if ctrl := a.sess.Controller(); ctrl != nil && ctrl.Frame() {
		a.render()
	}
}

func (a *App) render() {
	a.rendering = true
	defer func() { a.rendering = false }()

	if a.sess.BeginFrame() {
		a.search.SetText("")
		a.window.Canvas().Focus(a.search)
	}
	a.tags.Options = append([]string{allTags}, a.sess.Store.Tags()...)
	a.tags.Refresh()

	results := a.sess.Visible(a.search.Text, a.tag)
	cells := make([]fyne.CanvasObject, 0, len(results))
	for _, r := range results {
		cells = append(cells, a.cell(r.Link))
	}
	a.grid.Objects = cells
	a.grid.Refresh()

	msg := a.sess.Status()
	if msg == "" && a.sess.Store.WontSave() {
		msg = "links file was repaired; changes are not saved"
	}
	a.status.SetText(msg)

	a.sess.EndFrame(a)
}

func (a *App) cell(l links.Link) fyne.CanvasObject {
	img := canvas.NewImageFromImage(a.sess.Icons.Image(l.IconPath))
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(iconSize, iconSize))

	btn := newLinkButton(l.DisplayName(), func() {
		if err := a.sess.Launch(a.ctx, l); err != nil {
			a.status.SetText(a.sess.Status())
		}
	}, func(e *fyne.PointEvent) {
		menu := fyne.NewMenu("",
			fyne.NewMenuItem("Copy command", func() {
				a.sess.CopyCommand(l)
				a.status.SetText(a.sess.Status())
			}),
			fyne.NewMenuItem("Delete", func() {
				if err := a.sess.Delete(l.UUID); err != nil && !errors.Is(err, links.ErrWontSave) {
					dialog.ShowError(err, a.window)
				}
				a.render()
			}),
		)
		widget.ShowPopUpMenuAtPosition(menu, a.window.Canvas(), e.AbsolutePosition)
	})
	return container.NewVBox(img, btn)
}

func (a *App) setupTray() {
	desk, ok := a.fyneApp.(desktop.App)
	if !ok {
		return
	}
	refresh := func() {
		desk.SetSystemTrayMenu(trayMenu(tray.Menu()))
		desk.SetSystemTrayIcon(fyne.NewStaticResource("tray.png", tray.Icon()))
	}
	refresh()
	tray.OnRefresh(func() { fyne.Do(refresh) })
}

func trayMenu(items []tray.Item) *fyne.Menu {
	menu := make([]*fyne.MenuItem, 0, len(items))
	for _, it := range items {
		if it.Separator {
			menu = append(menu, fyne.NewMenuItemSeparator())
			continue
		}
		mi := fyne.NewMenuItem(it.Label, it.Action)
		mi.Checked = it.Checkable && it.Checked
		mi.Disabled = it.Disabled
		mi.IsQuit = it.Label == "Quit"
		menu = append(menu, mi)
	}
	return fyne.NewMenu("baro", menu...)
}
