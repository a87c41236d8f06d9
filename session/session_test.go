package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"baro/iconcache"
	"baro/launch"
	"baro/links"
	"baro/window"
)

type nopSurface struct{ hides int }

func (*nopSurface) Show()                                        {}
func (s *nopSurface) Hide()                                      { s.hides++ }
func (*nopSurface) Focus()                                       {}
func (*nopSurface) RequestRepaint(window.RepaintMode, time.Time) {}
func (*nopSurface) FilesDropped([]string)                        {}

type forgetter struct{ keys []string }

func (f *forgetter) ForgetImage(key string) error {
	f.keys = append(f.keys, key)
	return nil
}

func newSession(t *testing.T) (*Session, *launch.Recorder, *nopSurface) {
	t.Helper()
	c := links.NewCollection()
	c.Tags = []string{"dev"}
	c.Links = []links.Link{
		{Names: []string{"Terminal", "term"}, IconPath: "/i/term.png", RunCommand: "xterm", UUID: "1", Tags: []string{"dev"}},
		{Names: []string{"Editor"}, IconPath: "/i/shared.png", RunCommand: "ed", UUID: "2", Tags: []string{"dev"}},
		{Names: []string{"Music"}, IconPath: "/i/shared.png", RunCommand: "mpv", UUID: "3"},
	}
	deps := iconcache.New()
	path := filepath.Join(t.TempDir(), "links.json")
	store := links.NewStore(c, deps, links.FileStore{}, path)
	icons, err := iconcache.NewStore(10, "")
	if err != nil {
		t.Fatal(err)
	}
	rec := &launch.Recorder{}
	s := New(store, deps, icons, rec, 2)

	surface := &nopSurface{}
	flag := &window.SummonFlag{}
	ctrl := window.NewController(surface, flag)
	s.Attach(ctrl, flag)
	return s, rec, surface
}

func TestVisibleRegistersIcons(t *testing.T) {
	s, _, _ := newSession(t)
	got := s.Visible("", "")
	if len(got) != 3 {
		t.Fatalf("visible = %d", len(got))
	}
	if s.Deps.Refs("/i/shared.png") != 2 {
		t.Errorf("shared refs = %d, want 2", s.Deps.Refs("/i/shared.png"))
	}

	rows := s.Rows(got)
	if len(rows) != 2 || len(rows[0]) != 2 || len(rows[1]) != 1 {
		t.Errorf("rows = %v", rows)
	}
}

func TestVisibleFiltersByTag(t *testing.T) {
	s, _, _ := newSession(t)
	if got := s.Visible("", "dev"); len(got) != 2 {
		t.Fatalf("dev = %d", len(got))
	}
}

func TestDeleteSharedIconSweptOnlyWhenUnused(t *testing.T) {
	s, _, _ := newSession(t)
	s.Visible("", "")
	f := &forgetter{}

	if err := s.Delete("2"); err != nil {
		t.Fatal(err)
	}
	s.EndFrame(f)
	if len(f.keys) != 0 {
		t.Fatalf("forgot %v while Music still uses the icon", f.keys)
	}

	if err := s.Delete("3"); err != nil {
		t.Fatal(err)
	}
	s.EndFrame(f)
	if len(f.keys) != 1 || f.keys[0] != "/i/shared.png" {
		t.Fatalf("forgot %v", f.keys)
	}
}

func TestLaunchHidesWindow(t *testing.T) {
	s, rec, surface := newSession(t)
	s.Controller().Summon()

	if err := s.LaunchTop(context.Background(), "term", ""); err != nil {
		t.Fatal(err)
	}
	if len(rec.Requests) != 1 || rec.Requests[0].Command != "xterm" {
		t.Fatalf("requests = %+v", rec.Requests)
	}
	if s.Controller().Visible() || surface.hides != 1 {
		t.Error("window not hidden after launch")
	}
	if s.Launches() != 1 {
		t.Errorf("launches = %d", s.Launches())
	}
}

func TestLaunchFailureKeepsWindow(t *testing.T) {
	s, rec, _ := newSession(t)
	rec.Err = errors.New("boom")
	s.Controller().Summon()

	if err := s.LaunchTop(context.Background(), "", ""); err == nil {
		t.Fatal("expected error")
	}
	if !s.Controller().Visible() {
		t.Error("window hidden after failed launch")
	}
	if s.Status() == "" {
		t.Error("no status for failed launch")
	}
}

func TestLaunchTopNoMatch(t *testing.T) {
	s, _, _ := newSession(t)
	if err := s.LaunchTop(context.Background(), "zzzz", ""); !errors.Is(err, links.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestBeginFrameTakesSummon(t *testing.T) {
	s, _, _ := newSession(t)
	s.Controller().Summon()
	if !s.BeginFrame() {
		t.Fatal("summon not reported")
	}
	if s.BeginFrame() {
		t.Fatal("summon reported twice")
	}
}

func TestSavePersists(t *testing.T) {
	s, _, _ := newSession(t)
	l, err := s.Save(links.Link{Names: []string{"New"}, RunCommand: "new"})
	if err != nil {
		t.Fatal(err)
	}
	c, err := links.FileStore{}.Load(s.Store.Path())
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Links) != 4 || c.Links[3].UUID != l.UUID {
		t.Fatalf("saved = %+v", c.Links)
	}
}

func TestSaveWhileRepairedKeepsMemory(t *testing.T) {
	s, _, _ := newSession(t)
	s.Store.SetWontSave(true)
	if _, err := s.Save(links.Link{Names: []string{"X"}, RunCommand: "x"}); !errors.Is(err, links.ErrWontSave) {
		t.Fatalf("err = %v", err)
	}
	if s.Store.Len() != 4 {
		t.Errorf("len = %d", s.Store.Len())
	}
	if _, err := os.Stat(s.Store.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Error("file written while repaired")
	}
}

func TestDraft(t *testing.T) {
	l := Draft([]string{"/usr/share/icons/app.png", "/opt/tools/My Tool.AppImage"})
	if l.IconPath != "/usr/share/icons/app.png" {
		t.Errorf("icon = %q", l.IconPath)
	}
	if l.RunCommand != "/opt/tools/My Tool.AppImage" || l.DisplayName() != "My Tool" {
		t.Errorf("draft = %+v", l)
	}
	if l.UUID != "" {
		t.Error("draft should not have an id")
	}
}

func TestAddDropped(t *testing.T) {
	s, _, _ := newSession(t)
	bin := filepath.Join(t.TempDir(), "tool.sh")
	os.WriteFile(bin, []byte("#!/bin/sh\n"), 0755)

	l, err := s.AddDropped([]string{bin})
	if err != nil {
		t.Fatal(err)
	}
	if l.UUID == "" || l.DisplayName() != "tool" {
		t.Errorf("added = %+v", l)
	}
	if _, err := s.AddDropped([]string{"/x/icon.png"}); err == nil {
		t.Error("icon-only drop accepted")
	}
}
