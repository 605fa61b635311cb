package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/phrazzld/widget-api/internal/domain"
	"github.com/phrazzld/widget-api/internal/store"
)

// MockWidgetStore is an in-memory store.WidgetStore. Set Err to make every
// call fail with it, or a *Fn field to override one method.
type MockWidgetStore struct {
	CreateFn func(ctx context.Context, w *domain.Widget) error
	UpdateFn func(ctx context.Context, w *domain.Widget) error

	Err error

	mu      sync.Mutex
	widgets map[int64]domain.Widget
	nextID  int64
}

var _ store.WidgetStore = (*MockWidgetStore)(nil)

// NewMockWidgetStore creates an empty in-memory widget store.
func NewMockWidgetStore() *MockWidgetStore {
	return &MockWidgetStore{widgets: make(map[int64]domain.Widget)}
}

// Create implements store.WidgetStore.
func (m *MockWidgetStore) Create(ctx context.Context, w *domain.Widget) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, w)
	}
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nameTakenLocked(w.Name, 0) {
		return store.ErrWidgetNameExists
	}
	m.nextID++
	w.ID = m.nextID
	m.widgets[w.ID] = copyWidget(w)
	return nil
}

// GetByID implements store.WidgetStore.
func (m *MockWidgetStore) GetByID(ctx context.Context, id int64) (*domain.Widget, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.widgets[id]
	if !ok {
		return nil, store.ErrWidgetNotFound
	}
	out := copyWidget(&w)
	return &out, nil
}

// GetByName implements store.WidgetStore.
func (m *MockWidgetStore) GetByName(ctx context.Context, name string) (*domain.Widget, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.widgets {
		if w.Name == name {
			out := copyWidget(&w)
			return &out, nil
		}
	}
	return nil, store.ErrWidgetNotFound
}

// List implements store.WidgetStore.
func (m *MockWidgetStore) List(ctx context.Context) ([]*domain.Widget, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Widget, 0, len(m.widgets))
	for _, w := range m.widgets {
		c := copyWidget(&w)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Update implements store.WidgetStore.
func (m *MockWidgetStore) Update(ctx context.Context, w *domain.Widget) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, w)
	}
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.widgets[w.ID]; !ok {
		return store.ErrWidgetNotFound
	}
	if m.nameTakenLocked(w.Name, w.ID) {
		return store.ErrWidgetNameExists
	}
	m.widgets[w.ID] = copyWidget(w)
	return nil
}

// Delete implements store.WidgetStore.
func (m *MockWidgetStore) Delete(ctx context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.widgets[id]; !ok {
		return store.ErrWidgetNotFound
	}
	delete(m.widgets, id)
	return nil
}

// WithTx returns the mock itself; transactions are not simulated.
func (m *MockWidgetStore) WithTx(tx *sql.Tx) store.WidgetStore {
	return m
}

func (m *MockWidgetStore) nameTakenLocked(name string, exceptID int64) bool {
	for id, w := range m.widgets {
		if w.Name == name && id != exceptID {
			return true
		}
	}
	return false
}

func copyWidget(w *domain.Widget) domain.Widget {
	c := *w
	if w.Description != nil {
		d := *w.Description
		c.Description = &d
	}
	return c
}
