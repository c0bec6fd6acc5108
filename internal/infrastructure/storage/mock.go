package storage

import "sync"

// MockRepository is an in-memory Repository for tests.
type MockRepository struct {
	mu      sync.Mutex
	Runs    []*CommitRun
	Imports []*CreatedImport
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates an empty in-memory repository.
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

func (m *MockRepository) RecordRun(run *CommitRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.Runs {
		if existing.ID == run.ID {
			m.Runs[i] = run
			return nil
		}
	}
	m.Runs = append(m.Runs, run)
	return nil
}

func (m *MockRepository) ListRuns(limit int) ([]*CommitRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	runs := make([]*CommitRun, 0, len(m.Runs))
	for i := len(m.Runs) - 1; i >= 0 && len(runs) < limit; i-- {
		runs = append(runs, m.Runs[i])
	}
	return runs, nil
}

func (m *MockRepository) RecordCreatedImport(imp *CreatedImport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Imports = append(m.Imports, imp)
	return nil
}

func (m *MockRepository) HasImport(importID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, imp := range m.Imports {
		if imp.ImportID == importID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockRepository) Close() error { return nil }
