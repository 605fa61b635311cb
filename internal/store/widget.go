package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/widget-api/internal/domain"
)

// WidgetStore defines the interface for widget persistence.
type WidgetStore interface {
	// Create inserts a widget and sets its ID.
	// Returns ErrWidgetNameExists if the name is taken.
	Create(ctx context.Context, widget *domain.Widget) error

	// GetByID retrieves a widget. Returns ErrWidgetNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Widget, error)

	// GetByName retrieves the widget with the exact name.
	// Returns ErrWidgetNotFound if there is none.
	GetByName(ctx context.Context, name string) (*domain.Widget, error)

	// List returns all widgets ordered by ID.
	List(ctx context.Context) ([]*domain.Widget, error)

	// Update writes every column of widget.
	// Returns ErrWidgetNotFound if it does not exist and ErrWidgetNameExists
	// if the new name is taken.
	Update(ctx context.Context, widget *domain.Widget) error

	// Delete removes a widget. Returns ErrWidgetNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new WidgetStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) WidgetStore
}
