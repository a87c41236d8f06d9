package iconcache

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, size int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	img.Set(0, 0, color.White)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestStoreDecodesAndCaches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.png")
	writePNG(t, path, 16)

	s, err := NewStore(10, "")
	if err != nil {
		t.Fatal(err)
	}

	img := s.Image(path)
	if got := img.Bounds().Dx(); got != 16 {
		t.Fatalf("width = %d, want 16", got)
	}
	s.Image(path)

	hits, misses, size := s.Stats()
	if hits != 1 || misses != 1 || size != 1 {
		t.Fatalf("stats = %d/%d/%d, want 1/1/1", hits, misses, size)
	}
}

func TestStoreMissingFileUsesFallback(t *testing.T) {
	s, err := NewStore(10, "")
	if err != nil {
		t.Fatal(err)
	}
	img := s.Image(filepath.Join(t.TempDir(), "missing.png"))
	if img != s.Fallback() {
		t.Fatal("expected fallback image")
	}
}

func TestStoreCustomFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallback.png")
	writePNG(t, path, 32)

	s, err := NewStore(10, path)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Fallback().Bounds().Dx(); got != 32 {
		t.Fatalf("fallback width = %d, want 32", got)
	}
}

func TestForgetImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.png")
	writePNG(t, path, 8)

	s, _ := NewStore(10, "")
	s.Image(path)
	if !s.Cached(path) {
		t.Fatal("not cached after load")
	}
	if err := s.ForgetImage(path); err != nil {
		t.Fatal(err)
	}
	if s.Cached(path) {
		t.Fatal("still cached after forget")
	}
	if err := s.ForgetImage("/unknown"); err != nil {
		t.Fatalf("forget unknown: %v", err)
	}
}

func TestSweepDrivesStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.png")
	writePNG(t, path, 8)

	s, _ := NewStore(10, "")
	c := New()

	c.Register(path, "A")
	s.Image(path)
	c.Release(path, "A")

	if _, err := c.Sweep(s); err != nil {
		t.Fatal(err)
	}
	if s.Cached(path) {
		t.Fatal("store still holds swept icon")
	}
}

func TestPlaceholder(t *testing.T) {
	img := Placeholder(32)
	if img.Bounds().Dx() != 32 {
		t.Fatalf("size = %d", img.Bounds().Dx())
	}
	// corners are outside the rounded tile
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("corner not transparent")
	}
	if _, _, _, a := img.At(16, 16).RGBA(); a == 0 {
		t.Error("center transparent")
	}
}
