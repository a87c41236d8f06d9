package doctor

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"baro/links"
)

func TestCheckConfigDefaults(t *testing.T) {
	var buf bytes.Buffer
	cfg, ok := checkConfig(&buf, filepath.Join(t.TempDir(), "missing.toml"))
	if !ok || cfg == nil {
		t.Fatalf("defaults rejected:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "using defaults") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestCheckConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[gesture]\nwindow_ms = 5\n"), 0644)

	var buf bytes.Buffer
	if _, ok := checkConfig(&buf, path); ok {
		t.Fatal("invalid config passed")
	}
	if !strings.Contains(buf.String(), "FAIL") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestCheckLinksReportsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.json")
	c := links.NewCollection()
	c.Links = append(c.Links, links.Link{
		Names:      []string{"Ghost"},
		IconPath:   "/nonexistent/ghost.png",
		RunCommand: "baro-test-no-such-command",
		UUID:       "1",
	})
	if err := (links.FileStore{}).Save(c, path); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if !checkLinks(&buf, path) {
		t.Fatalf("check failed:\n%s", buf.String())
	}
	out := buf.String()
	for _, want := range []string{"icon /nonexistent/ghost.png not found", "1 missing icon(s)", "1 missing command(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckLinksRepairedFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.json")
	os.WriteFile(path, []byte(`{"program_links":[{"name":"x","run_command":"x"}]}`), 0644)

	var buf bytes.Buffer
	if checkLinks(&buf, path) {
		t.Fatal("repaired file passed")
	}
	if !strings.Contains(buf.String(), "links repair --write") {
		t.Errorf("output = %q", buf.String())
	}
}
