package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ExamNameState is the mutable "current exam name" the data-entry screen
// pre-fills. It lives in a flat file; writes go through a temp file and a
// rename so a crash never leaves a half-written name behind.
type ExamNameState struct {
	mu   sync.Mutex
	path string
}

func NewExamNameState(path string) *ExamNameState {
	return &ExamNameState{path: path}
}

func (s *ExamNameState) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read exam name state: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *ExamNameState) Set(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".exam-name-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}

	if _, err := tmp.WriteString(strings.TrimSpace(name) + "\n"); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write exam name state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp state file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace exam name state: %w", err)
	}
	return nil
}
