package links

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"baro/log"
)

// ConfigStore loads and saves link collections.
type ConfigStore interface {
	Load(path string) (*Collection, error)
	Save(c *Collection, path string) error
}

// FileStore keeps a collection as pretty-printed JSON on disk.
type FileStore struct{}

// Load parses path strictly. A missing file yields an empty collection.
func (FileStore) Load(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewCollection(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read links file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a links file, rejecting unknown fields and wrong types.
func Parse(data []byte) (*Collection, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	c := NewCollection()
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("failed to parse links file: %w", err)
	}
	c.Tags = normalizeTags(c.Tags)
	for i := range c.Links {
		if c.Links[i].UUID == "" {
			return nil, fmt.Errorf("failed to parse links file: link %d has no uuid", i)
		}
	}
	return c, nil
}

func (FileStore) Save(c *Collection, path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode links: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create links directory: %w", err)
	}
	if err := atomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save links: %w", err)
	}
	return nil
}

// LoadOrRepair loads path strictly and falls back to Repair when that
// fails. repaired reports whether the lenient path was taken; the caller
// should then keep the store from saving over the original file.
func LoadOrRepair(path string) (c *Collection, repaired bool, err error) {
	c, err = FileStore{}.Load(path)
	if err == nil {
		return c, false, nil
	}

	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, false, err
	}
	log.Warnf("links file %s: %v; repairing", path, err)

	c, repairErr := Repair(data)
	if repairErr != nil {
		return nil, false, fmt.Errorf("%w (repair failed: %v)", err, repairErr)
	}
	return c, true, nil
}

func atomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "links-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := true
	defer func() {
		if cleanup {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set temp file permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	cleanup = false
	return nil
}
