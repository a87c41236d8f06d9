package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"baro/config"
	"baro/event"
	"baro/links"
	"baro/session"
	"baro/tray"
	"baro/window"
)

// uiFuncMsg carries work from other goroutines onto the program's
// update loop, the terminal surface's UI goroutine.
type uiFuncMsg func()

type repaintMsg struct{}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231"))
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	cellStyleTUI  = lipgloss.NewStyle().Width(18).Padding(0, 1)
	selectedStyle = cellStyleTUI.Reverse(true)
)

// tui is both the bubbletea model and the window surface. Surface
// methods only run inside Update.
type tui struct {
	program *tea.Program
	sess    *session.Session
	mod     string
	ctx     context.Context

	visible  bool
	input    textinput.Model
	results  []links.Result
	selected int
	tag      string
	note     string
	width    int

	wake   bool
	wakeAt time.Time
}

func newTUI(sess *session.Session, cfg *config.Config) *tui {
	in := textinput.New()
	in.Placeholder = "search"
	in.Prompt = "› "
	in.CharLimit = 128

	t := &tui{
		sess:  sess,
		mod:   cfg.Gesture.Modifier,
		ctx:   context.Background(),
		input: in,
	}
	t.program = tea.NewProgram(t, tea.WithAltScreen(), tea.WithInput(os.Stdin))
	return t
}

func (t *tui) Name() string { return "tui" }

func (t *tui) Show() { t.visible = true }

func (t *tui) Hide() {
	t.visible = false
	t.input.Blur()
	t.note = ""
}

func (t *tui) Focus() { t.input.Focus() }

func (t *tui) RequestRepaint(mode window.RepaintMode, at time.Time) {
	t.wake = mode == window.ModeWaitUntil
	t.wakeAt = at
}

func (t *tui) FilesDropped(paths []string) {
	l, err := t.sess.AddDropped(paths)
	if err != nil {
		t.note = "drop: " + err.Error()
		return
	}
	t.note = "added " + l.DisplayName()
}

func (t *tui) ForgetImage(key string) error {
	return t.sess.Icons.ForgetImage(key)
}

func (t *tui) Do(fn func()) {
	t.program.Send(uiFuncMsg(fn))
}

func (t *tui) Run(ctx context.Context) error {
	t.ctx = ctx
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			t.program.Quit()
		case <-done:
		}
	}()
	_, err := t.program.Run()
	return err
}

func (t *tui) Quit() { t.program.Quit() }

func (t *tui) Init() tea.Cmd { return nil }

func (t *tui) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case uiFuncMsg:
		msg()
		return t, t.afterUI()

	case repaintMsg:
		if ctrl := t.sess.Controller(); ctrl != nil && ctrl.Frame() {
			t.frame()
		}

	case tea.WindowSizeMsg:
		t.width = msg.Width

	case tea.KeyMsg:
		return t, t.handleKey(msg)
	}
	return t, nil
}

// afterUI turns the controller's repaint request into a frame now or a
// tick later.
func (t *tui) afterUI() tea.Cmd {
	var cmd tea.Cmd
	if t.wake {
		t.wake = false
		cmd = tea.Tick(time.Until(t.wakeAt), func(time.Time) tea.Msg { return repaintMsg{} })
	}
	if ctrl := t.sess.Controller(); ctrl != nil && ctrl.Frame() {
		t.frame()
	}
	return cmd
}

func (t *tui) frame() {
	if t.sess.BeginFrame() {
		t.input.SetValue("")
		t.input.Focus()
		t.selected = 0
		t.note = ""
	}
	t.results = t.sess.Visible(t.input.Value(), t.tag)
	if t.selected >= len(t.results) {
		t.selected = max(0, len(t.results)-1)
	}
	t.sess.EndFrame(t)
}

func (t *tui) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	ctrl := t.sess.Controller()
	if ctrl == nil {
		return nil
	}
	if !t.visible {
		if msg.Type == tea.KeyEnter {
			ctrl.Summon()
			return t.afterUI()
		}
		return nil
	}

	if msg.Paste {
		if paths := droppedPaths(string(msg.Runes)); len(paths) > 0 {
			if err := ctrl.Handle(event.FileDropped(paths)); err != nil {
				t.note = err.Error()
			}
			return t.afterUI()
		}
	}

	switch msg.String() {
	case "esc":
		ctrl.Dismiss()
		return nil
	case "enter":
		t.launchSelected()
		return nil
	case "tab":
		t.nextTag()
	case "up":
		t.move(-t.sess.Columns)
	case "down":
		t.move(t.sess.Columns)
	case "ctrl+p":
		t.move(-1)
	case "ctrl+n":
		t.move(1)
	case "ctrl+y":
		if r, ok := t.current(); ok {
			t.sess.CopyCommand(r.Link)
		}
	case "ctrl+d":
		if r, ok := t.current(); ok {
			if err := t.sess.Delete(r.Link.UUID); err == nil {
				t.note = "deleted " + r.Link.DisplayName()
			}
		}
	default:
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		t.selected = 0
		t.frame()
		return cmd
	}
	t.frame()
	return nil
}

func (t *tui) current() (links.Result, bool) {
	if t.selected < 0 || t.selected >= len(t.results) {
		return links.Result{}, false
	}
	return t.results[t.selected], true
}

func (t *tui) move(delta int) {
	if len(t.results) == 0 {
		return
	}
	t.selected = min(max(t.selected+delta, 0), len(t.results)-1)
}

func (t *tui) nextTag() {
	tags := append([]string{""}, t.sess.Store.Tags()...)
	next := 0
	for i, tag := range tags {
		if tag == t.tag {
			next = (i + 1) % len(tags)
			break
		}
	}
	t.tag = tags[next]
	t.selected = 0
}

func (t *tui) launchSelected() {
	r, ok := t.current()
	if !ok {
		t.note = "no match"
		return
	}
	t.note = ""
	t.sess.Launch(t.ctx, r.Link)
}

func (t *tui) View() string {
	if !t.visible {
		hint := "double-tap " + t.mod + " to summon"
		if !tray.Gesture() {
			hint = "gesture off"
		}
		return dimStyle.Render(fmt.Sprintf("baro · %s · %d links · enter to open · ctrl+c to quit", hint, t.sess.Store.Len()))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("baro"))
	if t.tag != "" {
		b.WriteString("  " + tagStyle.Render("#"+t.tag))
	}
	b.WriteString("\n\n")
	b.WriteString(t.input.View())
	b.WriteString("\n\n")

	if len(t.results) == 0 {
		b.WriteString(dimStyle.Render("no links"))
		b.WriteString("\n")
	}
	i := 0
	for _, row := range t.sess.Rows(t.results) {
		cells := make([]string, len(row))
		for j, r := range row {
			cells[j] = t.cell(r.Link, i == t.selected)
			i++
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if note := t.status(); note != "" {
		b.WriteString(statusStyle.Render(note))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("enter launch · esc hide · tab tag · ctrl+y copy · ctrl+d delete"))
	return b.String()
}

func (t *tui) status() string {
	if t.note != "" {
		return t.note
	}
	return t.sess.Status()
}

func (t *tui) cell(l links.Link, selected bool) string {
	swatch := lipgloss.NewStyle().Foreground(swatchColor(t.sess.Icons.Image(l.IconPath))).Render("■")
	name := l.DisplayName()
	if len([]rune(name)) > 14 {
		name = string([]rune(name)[:13]) + "…"
	}
	style := cellStyleTUI
	if selected {
		style = selectedStyle
	}
	return style.Render(swatch + " " + name)
}

// swatchColor stands in for the icon: the colour at its centre.
func swatchColor(img image.Image) lipgloss.Color {
	if img == nil {
		return lipgloss.Color("240")
	}
	b := img.Bounds()
	r, g, bl, a := img.At(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2).RGBA()
	if a == 0 {
		return lipgloss.Color("240")
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, bl>>8))
}

// droppedPaths reads a paste as dropped files when every
// whitespace-separated field names an existing file.
func droppedPaths(text string) []string {
	var paths []string
	for _, f := range strings.Fields(text) {
		f = strings.Trim(f, `'"`)
		if _, err := os.Stat(f); err != nil {
			return nil
		}
		paths = append(paths, f)
	}
	return paths
}
