package links

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Repair recovers what it can from a links file that failed strict
// parsing. Every field is decoded on its own: a bad field is reset to its
// zero value, a string is accepted where a list is expected, and links
// without a uuid get a fresh one. Only input that is not a JSON object at
// the top level is an error.
func Repair(data []byte) (*Collection, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("links file is not a JSON object: %w", err)
	}

	c := NewCollection()
	c.Tags = normalizeTags(stringList(root["tags"]))

	var raw []json.RawMessage
	if err := json.Unmarshal(root["program_links"], &raw); err != nil {
		// a single object where a list belongs
		raw = []json.RawMessage{root["program_links"]}
	}
	for _, r := range raw {
		l, ok := repairLink(r)
		if !ok {
			continue
		}
		c.Links = append(c.Links, l)
		for _, t := range l.Tags {
			c.Tags = normalizeTags(append(c.Tags, t))
		}
	}
	return c, nil
}

func repairLink(data json.RawMessage) (Link, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return Link{}, false
	}

	l := Link{
		Names:      flattenNames(stringList(fields["name"])),
		IconPath:   str(fields["icon_path"]),
		RunCommand: str(fields["run_command"]),
		Arguments:  stringList(fields["arguments"]),
		Tags:       normalizeTags(stringList(fields["tags"])),
		UUID:       str(fields["uuid"]),
		Elevated:   boolean(fields["elevated"]),
		NewWindow:  boolean(fields["new_window"]),
	}
	if l.Arguments == nil {
		l.Arguments = []string{}
	}
	if len(l.Names) == 0 && l.RunCommand == "" {
		return Link{}, false
	}
	if l.UUID == "" {
		l.UUID = newID()
	}
	return l, true
}

func str(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return ""
}

func boolean(raw json.RawMessage) bool {
	var b bool
	if json.Unmarshal(raw, &b) == nil {
		return b
	}
	return false
}

// stringList accepts ["a","b"], "a" or a list with non-string members,
// which are skipped.
func stringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil {
		return list
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return []string{s}
	}
	// a type error leaves list partially filled
	list = nil
	var mixed []json.RawMessage
	if json.Unmarshal(raw, &mixed) == nil {
		for _, m := range mixed {
			if json.Unmarshal(m, &s) == nil {
				list = append(list, s)
			}
		}
	}
	return list
}

// flattenNames splits "a/b" entries the way the add form does.
func flattenNames(names []string) []string {
	var out []string
	for _, n := range names {
		out = append(out, ParseNames(n)...)
	}
	return out
}

// Describe summarises a parse error for the repair command.
func Describe(err error) string {
	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syn):
		return fmt.Sprintf("syntax error at byte %d", syn.Offset)
	case errors.As(err, &typ):
		return fmt.Sprintf("field %q: expected %s, got %s", typ.Field, typ.Type, typ.Value)
	case err != nil:
		return strings.TrimPrefix(err.Error(), "failed to parse links file: ")
	}
	return ""
}
