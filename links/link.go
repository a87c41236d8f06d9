// Package links holds the user's program links: the in-memory store the
// UI edits, the JSON file they persist to, and fuzzy search over them.
package links

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// SchemaVersion is written to every saved links file.
const SchemaVersion uint32 = 6

type Link struct {
	Names      []string `json:"name"`
	IconPath   string   `json:"icon_path"`
	RunCommand string   `json:"run_command"`
	Arguments  []string `json:"arguments"`
	Tags       []string `json:"tags"`
	UUID       string   `json:"uuid"`
	Elevated   bool     `json:"elevated,omitempty"`
	NewWindow  bool     `json:"new_window,omitempty"`
}

type Collection struct {
	Version uint32   `json:"version"`
	Tags    []string `json:"tags"`
	Links   []Link   `json:"program_links"`
}

func NewCollection() *Collection {
	return &Collection{Version: SchemaVersion, Tags: []string{}, Links: []Link{}}
}

// NewLink creates a link with a fresh time-ordered id. names is split on
// "/" so "Firefox/ff/browser" yields three aliases.
func NewLink(names, command string) Link {
	return Link{
		Names:      ParseNames(names),
		RunCommand: command,
		Arguments:  []string{},
		Tags:       []string{},
		UUID:       newID(),
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func ParseNames(s string) []string {
	var names []string
	for _, n := range strings.Split(s, "/") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func (l Link) DisplayName() string {
	if len(l.Names) == 0 {
		return "(unnamed)"
	}
	return l.Names[0]
}

func (l Link) HasTag(tag string) bool {
	return slices.Contains(l.Tags, tag)
}

// clone returns a deep copy so callers never share slices with the store.
func (l Link) clone() Link {
	l.Names = slices.Clone(l.Names)
	l.Arguments = slices.Clone(l.Arguments)
	l.Tags = slices.Clone(l.Tags)
	return l
}

// normalizeTags sorts and deduplicates in place.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
