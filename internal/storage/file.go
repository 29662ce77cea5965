package storage

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// FileStore keeps one JSON document per namespace under Dir.
type FileStore struct {
	Dir string
}

func (f FileStore) path(namespace string) string {
	return filepath.Join(f.Dir, namespace+".json")
}

// Save writes the document atomically: encode, write to a temp file in the
// same directory, then rename over the previous document.
func (f FileStore) Save(namespace string, state any) error {
	if f.Dir == "" {
		return fmt.Errorf("file store dir not configured")
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode %s state: %w", namespace, err)
	}
	tmp, err := os.CreateTemp(f.Dir, namespace+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("write %s state: %w", namespace, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("close %s state: %w", namespace, err)
	}
	if err := os.Rename(name, f.path(namespace)); err != nil {
		os.Remove(name)
		return fmt.Errorf("replace %s state: %w", namespace, err)
	}
	return nil
}

// Load reads the namespace document if present.
func (f FileStore) Load(namespace string, dest any) (bool, error) {
	raw, err := os.ReadFile(f.path(namespace))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s state: %w", namespace, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %s state: %w", namespace, ErrCorrupt)
	}
	return true, nil
}
