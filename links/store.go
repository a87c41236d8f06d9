package links

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNotFound = errors.New("link not found")
	ErrWontSave = errors.New("links file was repaired; refusing to overwrite it (run: baro links repair --write)")
)

// IconDeps is the part of the icon cache the store keeps informed when a
// link's icon stops being used.
type IconDeps interface {
	Register(path, id string)
	Release(path, id string)
}

// Store is the in-memory link set the UI works on. Like the icon cache it
// belongs to the UI goroutine and has no lock.
type Store struct {
	links    []Link
	tags     []string
	icons    IconDeps
	backend  ConfigStore
	path     string
	wontSave bool
}

func NewStore(c *Collection, icons IconDeps, backend ConfigStore, path string) *Store {
	s := &Store{icons: icons, backend: backend, path: path}
	if c != nil {
		s.tags = normalizeTags(c.Tags)
		for _, l := range c.Links {
			s.links = append(s.links, l.clone())
		}
	}
	return s
}

func (s *Store) Len() int { return len(s.links) }

// Links returns a copy of every link in file order.
func (s *Store) Links() []Link {
	out := make([]Link, len(s.links))
	for i, l := range s.links {
		out[i] = l.clone()
	}
	return out
}

func (s *Store) Get(id string) (Link, error) {
	i := s.index(id)
	if i < 0 {
		return Link{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return s.links[i].clone(), nil
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.links, func(l Link) bool { return l.UUID == id })
}

// Add appends l, assigning an id when it has none. Tags on l that the
// store does not know yet are added to the tag set.
func (s *Store) Add(l Link) Link {
	l = l.clone()
	if l.UUID == "" {
		l.UUID = newID()
	}
	l.Tags = normalizeTags(l.Tags)
	for _, t := range l.Tags {
		s.AddTag(t)
	}
	s.links = append(s.links, l)
	return l.clone()
}

// Update replaces the link with the same id. When the icon changed the
// old path is released so the next sweep can forget it.
func (s *Store) Update(l Link) error {
	i := s.index(l.UUID)
	if i < 0 {
		return fmt.Errorf("%s: %w", l.UUID, ErrNotFound)
	}
	old := s.links[i]
	if old.IconPath != l.IconPath && s.icons != nil {
		s.icons.Release(old.IconPath, old.UUID)
	}
	l = l.clone()
	l.Tags = normalizeTags(l.Tags)
	for _, t := range l.Tags {
		s.AddTag(t)
	}
	s.links[i] = l
	return nil
}

func (s *Store) Remove(id string) (Link, error) {
	i := s.index(id)
	if i < 0 {
		return Link{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	removed := s.links[i]
	s.links = slices.Delete(s.links, i, i+1)
	if s.icons != nil {
		s.icons.Release(removed.IconPath, removed.UUID)
	}
	return removed, nil
}

// Tags returns the tag set, sorted.
func (s *Store) Tags() []string {
	return slices.Clone(s.tags)
}

func (s *Store) AddTag(tag string) {
	t := normalizeTags([]string{tag})
	if len(t) == 0 {
		return
	}
	s.tags = normalizeTags(append(s.tags, t[0]))
}

// RemoveTag drops tag from the set and from every link carrying it.
func (s *Store) RemoveTag(tag string) {
	s.tags = slices.DeleteFunc(s.tags, func(t string) bool { return t == tag })
	for i := range s.links {
		s.links[i].Tags = slices.DeleteFunc(s.links[i].Tags, func(t string) bool { return t == tag })
	}
}

// FilterByTag returns the links carrying tag; an empty tag matches all.
func (s *Store) FilterByTag(tag string) []Link {
	if tag == "" {
		return s.Links()
	}
	var out []Link
	for _, l := range s.links {
		if l.HasTag(tag) {
			out = append(out, l.clone())
		}
	}
	return out
}

// RegisterVisible records the icon dependency of every link in visible.
// The grid calls it once per frame for whatever it is about to draw.
func (s *Store) RegisterVisible(visible []Link) {
	if s.icons == nil {
		return
	}
	for _, l := range visible {
		s.icons.Register(l.IconPath, l.UUID)
	}
}

// Collection snapshots the store for saving. Link tags are filtered down
// to the store's tag set.
func (s *Store) Collection() *Collection {
	c := NewCollection()
	c.Tags = slices.Clone(s.tags)
	for _, l := range s.links {
		l = l.clone()
		l.Tags = slices.DeleteFunc(l.Tags, func(t string) bool {
			_, found := slices.BinarySearch(s.tags, t)
			return !found
		})
		if l.Arguments == nil {
			l.Arguments = []string{}
		}
		c.Links = append(c.Links, l)
	}
	return c
}

func (s *Store) WontSave() bool      { return s.wontSave }
func (s *Store) SetWontSave(on bool) { s.wontSave = on }
func (s *Store) Path() string        { return s.path }

// Persist writes the store through its backend. It refuses while the
// store holds repaired data.
func (s *Store) Persist() error {
	if s.wontSave {
		return ErrWontSave
	}
	if s.backend == nil {
		return errors.New("links store has no backend")
	}
	return s.backend.Save(s.Collection(), s.path)
}
