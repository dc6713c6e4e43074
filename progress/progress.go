// Package progress persists the unlocked level high-water mark.
package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	log "github.com/sirupsen/logrus"
)

const (
	configDirName = "mazerun"
	dirEnv        = "MAZERUN_PROGRESS_DIR"
)

var ErrInvalidLevel = errors.New("unlocked level must be positive")

// FileStore keeps one JSON record per profile under Dir.
type FileStore struct {
	Dir     string
	Profile string
	mu      sync.Mutex
}

type record struct {
	Unlocked int `json:"unlocked"`
}

var profilePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

// DefaultDir is $MAZERUN_PROGRESS_DIR if set, else UserConfigDir()/mazerun.
func DefaultDir() (string, error) {
	if env := os.Getenv(dirEnv); env != "" {
		return env, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, configDirName), nil
}

func NewFileStore(dir, profile string) (*FileStore, error) {
	if !profilePattern.MatchString(profile) {
		return nil, fmt.Errorf("invalid profile name %q", profile)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{Dir: dir, Profile: profile}, nil
}

func (s *FileStore) path() string {
	return filepath.Join(s.Dir, s.Profile+".json")
}

// Load never fails: missing or malformed data reads as level 1.
func (s *FileStore) Load() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.WithField("profile", s.Profile).Warnf("progress read failed: %v", err)
		}
		return 1
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil || rec.Unlocked < 1 {
		log.WithField("profile", s.Profile).Warn("ignoring malformed progress record")
		return 1
	}
	return rec.Unlocked
}

// Save writes atomically through a temp file.
func (s *FileStore) Save(unlocked int) error {
	if unlocked < 1 {
		return ErrInvalidLevel
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(record{Unlocked: unlocked})
	if err != nil {
		return err
	}
	path := s.path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryStore is a process local store, used when no directory is configured.
type MemoryStore struct {
	mu       sync.Mutex
	unlocked int
}

func (m *MemoryStore) Load() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unlocked < 1 {
		return 1
	}
	return m.unlocked
}

func (m *MemoryStore) Save(unlocked int) error {
	if unlocked < 1 {
		return ErrInvalidLevel
	}
	m.mu.Lock()
	m.unlocked = unlocked
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	m.unlocked = 0
	m.mu.Unlock()
	return nil
}
