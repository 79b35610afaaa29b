package highscore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// FileStore keeps the table in a YAML file.
type FileStore struct {
	path   string
	logger *log.Logger
	mu     sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created on the
// first save.
func NewFileStore(path string, logger *log.Logger) *FileStore {
	if logger == nil {
		logger = log.Default()
	}
	return &FileStore{path: path, logger: logger}
}

type fileData struct {
	Scores []Entry `yaml:"scores"`
}

// Load reads the table. A missing file is an empty table; so is a file that
// cannot be parsed, which is logged and left for the next save to replace.
func (s *FileStore) Load() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read high scores: %w", err)
	}

	var fd fileData
	if err := yaml.Unmarshal(data, &fd); err != nil {
		s.logger.Warn("Ignoring malformed high score file", "path", s.path, "err", err)
		return []Entry{}, nil
	}
	if fd.Scores == nil {
		return []Entry{}, nil
	}
	return normalize(fd.Scores), nil
}

// Save inserts e and rewrites the file.
func (s *FileStore) Save(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load()
	if err != nil {
		return err
	}
	list = Insert(list, e)

	data, err := yaml.Marshal(fileData{Scores: list})
	if err != nil {
		return fmt.Errorf("encode high scores: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create high score dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write high scores: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace high scores: %w", err)
	}
	return nil
}

// MemoryStore keeps the table in memory.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

// Load returns a copy of the table.
func (m *MemoryStore) Load() ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

// Save inserts e.
func (m *MemoryStore) Save(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = Insert(m.entries, e)
	return nil
}
