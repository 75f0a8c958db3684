package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"employee-management/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository keeps employees in process memory. It mirrors the MongoDB
// repository's matching rules and is used for local runs without a database
// and in handler tests.
type MemoryRepository struct {
	mu   sync.Mutex
	docs []models.Employee
	err  error
	now  func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: func() time.Time { return time.Now().UTC() }}
}

// WithError makes every subsequent call fail with err.
func (m *MemoryRepository) WithError(err error) *MemoryRepository {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// Len returns the number of stored employees.
func (m *MemoryRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

func (m *MemoryRepository) Create(_ context.Context, e *models.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.emailTaken(e.Email, e.ID) {
		return ErrDuplicateEmail
	}
	now := m.now()
	e.CreatedAt = now
	e.UpdatedAt = now
	m.docs = append(m.docs, *e)
	return nil
}

func (m *MemoryRepository) FindByKey(_ context.Context, key string) (*models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	i := m.indexOf(key)
	if i < 0 {
		return nil, ErrNotFound
	}
	e := m.docs[i]
	return &e, nil
}

// Update stores merged, restricted to the fields patch names.
func (m *MemoryRepository) Update(_ context.Context, id primitive.ObjectID, patch models.UpdateEmployeeDTO, merged *models.Employee) (*models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	i := m.indexOf(id.Hex())
	if i < 0 {
		return nil, ErrNotFound
	}
	if patch.Email != nil && m.emailTaken(merged.Email, id) {
		return nil, ErrDuplicateEmail
	}

	e := m.docs[i]
	if err := patch.ApplyTo(&e); err != nil {
		return nil, err
	}
	e.UpdatedAt = m.now()
	m.docs[i] = e
	return &e, nil
}

func (m *MemoryRepository) DeleteByKey(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	i := m.indexOf(key)
	if i < 0 {
		return ErrNotFound
	}
	m.docs = append(m.docs[:i], m.docs[i+1:]...)
	return nil
}

func (m *MemoryRepository) Search(_ context.Context, q models.SearchQuery) ([]models.Employee, error) {
	return m.filter(func(e models.Employee) bool {
		if !exact(q.EmployeeID, e.EmployeeID) || !exact(q.Department, e.Department) {
			return false
		}
		tokens := strings.Fields(q.Name)
		switch {
		case len(tokens) == 1:
			return containsFold(e.FirstName, tokens[0]) || containsFold(e.LastName, tokens[0])
		case len(tokens) >= 2:
			return containsFold(e.FirstName, tokens[0]) && containsFold(e.LastName, tokens[1])
		}
		return true
	})
}

func (m *MemoryRepository) List(_ context.Context, f ListFilter) ([]models.Employee, error) {
	return m.filter(func(e models.Employee) bool {
		if !exact(f.EmployeeID, e.EmployeeID) || !exact(f.Department, e.Department) {
			return false
		}
		if f.Name != "" && !containsFold(e.FirstName, f.Name) && !containsFold(e.LastName, f.Name) {
			return false
		}
		if f.JoinedFrom != nil && f.JoinedTo != nil {
			if e.DateOfJoining == nil || e.DateOfJoining.Before(*f.JoinedFrom) || e.DateOfJoining.After(*f.JoinedTo) {
				return false
			}
		}
		return true
	})
}

func (m *MemoryRepository) filter(keep func(models.Employee) bool) ([]models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Employee, 0)
	for _, e := range m.docs {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// indexOf resolves key the same way keyFilter does.
func (m *MemoryRepository) indexOf(key string) int {
	if primitive.IsValidObjectID(key) {
		oid, _ := primitive.ObjectIDFromHex(key)
		for i, e := range m.docs {
			if e.ID == oid {
				return i
			}
		}
		return -1
	}
	for i, e := range m.docs {
		if e.EmployeeID == key {
			return i
		}
	}
	return -1
}

func (m *MemoryRepository) emailTaken(email string, except primitive.ObjectID) bool {
	for _, e := range m.docs {
		if e.Email == email && e.ID != except {
			return true
		}
	}
	return false
}

func exact(want, got string) bool {
	return want == "" || want == got
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
