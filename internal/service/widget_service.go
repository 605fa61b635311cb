package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/widget-api/internal/domain"
	"github.com/phrazzld/widget-api/internal/platform/logger"
	"github.com/phrazzld/widget-api/internal/store"
)

// WidgetService provides widget operations to the HTTP layer.
type WidgetService interface {
	// Get returns the widget or an error wrapping store.ErrWidgetNotFound.
	Get(ctx context.Context, id int64) (*domain.Widget, error)

	// List returns all widgets ordered by ID.
	List(ctx context.Context) ([]*domain.Widget, error)

	// NameTaken reports whether a widget other than exceptID uses name.
	// Pass 0 for exceptID when checking a new widget.
	NameTaken(ctx context.Context, name string, exceptID int64) (bool, error)

	// Create stores a new widget and assigns its ID. A name conflict is
	// returned as an error wrapping store.ErrWidgetNameExists.
	Create(ctx context.Context, w *domain.Widget) error

	// Save overwrites an existing widget. Errors wrap
	// store.ErrWidgetNotFound or store.ErrWidgetNameExists.
	Save(ctx context.Context, w *domain.Widget) error

	// Delete removes a widget. Deleting a missing widget succeeds.
	Delete(ctx context.Context, id int64) error
}

type widgetService struct {
	widgets store.WidgetStore
	logger  *slog.Logger
}

var _ WidgetService = (*widgetService)(nil)

// NewWidgetService creates a WidgetService over widgets.
func NewWidgetService(widgets store.WidgetStore, logger *slog.Logger) (WidgetService, error) {
	if widgets == nil {
		return nil, fmt.Errorf("%w: widget store", ErrNilDependency)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &widgetService{
		widgets: widgets,
		logger:  logger.With(slog.String("component", "widget_service")),
	}, nil
}

func (s *widgetService) Get(ctx context.Context, id int64) (*domain.Widget, error) {
	w, err := s.widgets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrWidgetNotFound) {
			return nil, fmt.Errorf("widget %d: %w", id, err)
		}
		return nil, newServiceError("widget", "get", err)
	}
	return w, nil
}

func (s *widgetService) List(ctx context.Context) ([]*domain.Widget, error) {
	widgets, err := s.widgets.List(ctx)
	if err != nil {
		return nil, newServiceError("widget", "list", err)
	}
	return widgets, nil
}

func (s *widgetService) NameTaken(ctx context.Context, name string, exceptID int64) (bool, error) {
	w, err := s.widgets.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrWidgetNotFound) {
			return false, nil
		}
		return false, newServiceError("widget", "check name", err)
	}
	return w.ID != exceptID, nil
}

func (s *widgetService) Create(ctx context.Context, w *domain.Widget) error {
	if err := s.widgets.Create(ctx, w); err != nil {
		if errors.Is(err, store.ErrWidgetNameExists) {
			return fmt.Errorf("create widget: %w", err)
		}
		return newServiceError("widget", "create", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("widget created", slog.Int64("widget_id", w.ID))
	return nil
}

func (s *widgetService) Save(ctx context.Context, w *domain.Widget) error {
	if err := s.widgets.Update(ctx, w); err != nil {
		if errors.Is(err, store.ErrWidgetNameExists) || errors.Is(err, store.ErrWidgetNotFound) {
			return fmt.Errorf("save widget %d: %w", w.ID, err)
		}
		return newServiceError("widget", "save", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("widget saved", slog.Int64("widget_id", w.ID))
	return nil
}

func (s *widgetService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.widgets.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrWidgetNotFound) {
			log.Debug("delete of missing widget ignored", slog.Int64("widget_id", id))
			return nil
		}
		return newServiceError("widget", "delete", err)
	}

	log.Info("widget deleted", slog.Int64("widget_id", id))
	return nil
}
