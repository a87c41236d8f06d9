// Package session is the state a running launcher window works on: the
// link store, icon bookkeeping, the visibility controller and the
// launcher. Frontends drive it from their UI goroutine.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"baro/clipboard"
	"baro/iconcache"
	"baro/launch"
	"baro/links"
	"baro/log"
	"baro/window"
)

// Session is owned by the UI goroutine and is not safe for concurrent use.
type Session struct {
	Store    *links.Store
	Deps     *iconcache.Cache
	Icons    *iconcache.Store
	Launcher launch.Launcher
	Columns  int

	ctrl     *window.Controller
	summon   *window.SummonFlag
	launches int
	status   string
}

func New(store *links.Store, deps *iconcache.Cache, icons *iconcache.Store, l launch.Launcher, columns int) *Session {
	if columns <= 0 {
		columns = 6
	}
	return &Session{Store: store, Deps: deps, Icons: icons, Launcher: l, Columns: columns}
}

// Attach connects the controller once the frontend exists.
func (s *Session) Attach(ctrl *window.Controller, flag *window.SummonFlag) {
	s.ctrl = ctrl
	s.summon = flag
}

func (s *Session) Controller() *window.Controller { return s.ctrl }
func (s *Session) Launches() int                  { return s.launches }

// Status is the last user-facing message (save failures, launch errors).
func (s *Session) Status() string { return s.status }

// BeginFrame reports whether the window was summoned since the last
// frame; the frontend then clears its search box and focuses it.
func (s *Session) BeginFrame() (summoned bool) {
	if s.summon == nil {
		return false
	}
	return s.summon.Take()
}

// Visible returns the links to draw for query within tag, best match
// first, and records their icon dependencies for this frame.
func (s *Session) Visible(query, tag string) []links.Result {
	results := links.Search(s.Store.FilterByTag(tag), query)
	shown := make([]links.Link, len(results))
	for i, r := range results {
		shown[i] = r.Link
	}
	s.Store.RegisterVisible(shown)
	return results
}

// Rows splits results into grid rows of Columns each.
func (s *Session) Rows(results []links.Result) [][]links.Result {
	var rows [][]links.Result
	for len(results) > 0 {
		n := min(s.Columns, len(results))
		rows = append(rows, results[:n])
		results = results[n:]
	}
	return rows
}

// EndFrame sweeps icons released during the frame through f.
func (s *Session) EndFrame(f iconcache.Forgetter) {
	evicted, err := s.Deps.Sweep(f)
	if err != nil {
		log.Warnf("icon sweep: %v", err)
	}
	log.Sweep(evicted, s.Deps.Len())
}

// Launch starts l and hides the window when it started.
func (s *Session) Launch(ctx context.Context, l links.Link) error {
	err := s.Launcher.Spawn(ctx, l.RunCommand, l.Arguments, l.Elevated, l.NewWindow)
	log.Launch(l.DisplayName(), l.RunCommand, l.Arguments, l.Elevated, err)
	if err != nil {
		s.status = fmt.Sprintf("%s: %v", l.DisplayName(), err)
		return err
	}
	s.launches++
	s.status = ""
	if s.ctrl != nil {
		s.ctrl.Dismiss()
	}
	return nil
}

// LaunchTop launches the best match for query, the Enter key action.
func (s *Session) LaunchTop(ctx context.Context, query, tag string) error {
	results := links.Search(s.Store.FilterByTag(tag), query)
	if len(results) == 0 {
		return links.ErrNotFound
	}
	return s.Launch(ctx, results[0].Link)
}

// Save adds l when it has no id yet, otherwise updates it, then persists.
func (s *Session) Save(l links.Link) (links.Link, error) {
	if l.UUID == "" {
		l = s.Store.Add(l)
	} else if err := s.Store.Update(l); err != nil {
		return l, err
	}
	return l, s.persist()
}

func (s *Session) Delete(id string) error {
	if _, err := s.Store.Remove(id); err != nil {
		return err
	}
	return s.persist()
}

func (s *Session) CopyCommand(l links.Link) error {
	if err := clipboard.CopyCommand(l.RunCommand, l.Arguments); err != nil {
		s.status = "copy failed: " + err.Error()
		return err
	}
	s.status = "copied " + l.DisplayName()
	return nil
}

func (s *Session) persist() error {
	err := s.Store.Persist()
	switch {
	case errors.Is(err, links.ErrWontSave):
		s.status = "changes kept in memory only: links file was repaired"
		log.Warn(s.status)
	case err != nil:
		s.status = err.Error()
		log.Errorf("save links: %v", err)
	}
	return err
}

// Draft builds an unsaved link from dropped files: the first path that
// is not an image is the command, the first image becomes the icon.
func Draft(paths []string) links.Link {
	var l links.Link
	for _, p := range paths {
		switch strings.ToLower(filepath.Ext(p)) {
		case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".ico":
			if l.IconPath == "" {
				l.IconPath = p
			}
			continue
		}
		if l.RunCommand == "" {
			l.RunCommand = p
		}
	}
	if l.RunCommand != "" {
		name := strings.TrimSuffix(filepath.Base(l.RunCommand), filepath.Ext(l.RunCommand))
		l.Names = []string{name}
	}
	l.Arguments = []string{}
	l.Tags = []string{}
	return l
}

// AddDropped saves a draft for paths right away, the terminal frontend's
// drop action. Drafts without a command are rejected.
func (s *Session) AddDropped(paths []string) (links.Link, error) {
	l := Draft(paths)
	if l.RunCommand == "" {
		return l, fmt.Errorf("no program among dropped files")
	}
	if _, err := os.Stat(l.RunCommand); err != nil {
		return l, err
	}
	return s.Save(l)
}
