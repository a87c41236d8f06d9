package iconcache

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"baro/log"
)

const DefaultSize = 200

// Store holds decoded icons keyed by file path. Missing or undecodable
// files resolve to the fallback image, which is cached under the failing
// path so a broken icon is only read once until it is forgotten.
type Store struct {
	mu       sync.RWMutex
	cache    *lru.Cache[string, image.Image]
	fallback image.Image
	hits     int64
	misses   int64
}

// NewStore creates a store holding at most size images. fallbackPath may
// be empty, in which case a generated placeholder is used.
func NewStore(size int, fallbackPath string) (*Store, error) {
	if size <= 0 {
		size = DefaultSize
	}
	cache, err := lru.New[string, image.Image](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create icon store: %w", err)
	}

	fallback := Placeholder(64)
	if fallbackPath != "" {
		img, err := decodeFile(fallbackPath)
		if err != nil {
			log.Warnf("fallback icon %s: %v", fallbackPath, err)
		} else {
			fallback = img
		}
	}

	return &Store{cache: cache, fallback: fallback}, nil
}

// Image returns the decoded icon at path.
func (s *Store) Image(path string) image.Image {
	if path == "" {
		return s.fallback
	}

	s.mu.RLock()
	img, ok := s.cache.Get(path)
	s.mu.RUnlock()
	if ok {
		s.mu.Lock()
		s.hits++
		s.mu.Unlock()
		return img
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if img, ok := s.cache.Get(path); ok {
		s.hits++
		return img
	}
	s.misses++

	img, err := decodeFile(path)
	if err != nil {
		log.Warnf("icon %s: %v", path, err)
		img = s.fallback
	}
	s.cache.Add(path, img)
	return img
}

// Cached reports whether path currently holds a decoded image.
func (s *Store) Cached(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Contains(path)
}

// ForgetImage drops the decoded image for key. Unknown keys are ignored.
func (s *Store) ForgetImage(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Remove(key)
	return nil
}

func (s *Store) Fallback() image.Image { return s.fallback }

func (s *Store) Stats() (hits, misses int64, size int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits, s.misses, s.cache.Len()
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}
