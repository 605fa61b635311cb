package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/widget-api/internal/api/shared"
	"github.com/phrazzld/widget-api/internal/domain"
	"github.com/phrazzld/widget-api/internal/platform/logger"
	"github.com/phrazzld/widget-api/internal/problem"
	"github.com/phrazzld/widget-api/internal/service"
	"github.com/phrazzld/widget-api/internal/store"
	"github.com/phrazzld/widget-api/internal/validation"
)

// WidgetHandler serves the /widgets resource.
type WidgetHandler struct {
	widgets   service.WidgetService
	validator *validation.Validator
	logger    *slog.Logger
}

// NewWidgetHandler creates a WidgetHandler. A nil validator is replaced by
// validation.NewValidator and a nil logger by slog.Default.
func NewWidgetHandler(widgets service.WidgetService, validator *validation.Validator, logger *slog.Logger) *WidgetHandler {
	if widgets == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("widget service cannot be nil for WidgetHandler")
	}
	if validator == nil {
		validator = validation.NewValidator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WidgetHandler{
		widgets:   widgets,
		validator: validator,
		logger:    logger.With(slog.String("component", "widget_handler")),
	}
}

// Create handles POST /widgets.
func (h *WidgetHandler) Create(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	fields, err := shared.DecodeBody(w, r)
	if err != nil {
		return err
	}

	widget := &domain.Widget{}
	if err := h.submit(ctx, widget, fields, true); err != nil {
		return err
	}
	if err := h.widgets.Create(ctx, widget); err != nil {
		return saveError(err, "")
	}

	w.Header().Set("Location", fmt.Sprintf("/widgets/%d", widget.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, widget)
	return nil
}

// Show handles GET /widgets/{id}.
func (h *WidgetHandler) Show(w http.ResponseWriter, r *http.Request) error {
	widget, err := h.load(r)
	if err != nil {
		return err
	}
	shared.RespondWithJSON(w, r, http.StatusOK, widget)
	return nil
}

// List handles GET /widgets.
func (h *WidgetHandler) List(w http.ResponseWriter, r *http.Request) error {
	widgets, err := h.widgets.List(r.Context())
	if err != nil {
		return err
	}
	shared.RespondWithJSON(w, r, http.StatusOK, WidgetListResponse{Widgets: widgets})
	return nil
}

// Update handles PUT and PATCH /widgets/{id}. PUT replaces the widget and
// clears fields missing from the body; PATCH changes only the fields sent.
func (h *WidgetHandler) Update(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	widget, err := h.load(r)
	if err != nil {
		return err
	}

	fields, err := shared.DecodeBody(w, r)
	if err != nil {
		return err
	}

	clearMissing := r.Method != http.MethodPatch
	if err := h.submit(ctx, widget, fields, clearMissing); err != nil {
		return err
	}
	if err := h.widgets.Save(ctx, widget); err != nil {
		raw, _, _ := widgetIDParam(r)
		return saveError(err, raw)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, widget)
	return nil
}

// Delete handles DELETE /widgets/{id}. It answers 204 whether or not the
// widget existed.
func (h *WidgetHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	if _, id, ok := widgetIDParam(r); ok {
		if err := h.widgets.Delete(r.Context(), id); err != nil {
			return err
		}
	}
	shared.RespondWithStatus(w, http.StatusNoContent)
	return nil
}

// load fetches the widget named by the {id} path parameter.
func (h *WidgetHandler) load(r *http.Request) (*domain.Widget, error) {
	raw, id, ok := widgetIDParam(r)
	if !ok {
		return nil, widgetNotFound(raw)
	}

	widget, err := h.widgets.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrWidgetNotFound) {
			return nil, widgetNotFound(raw)
		}
		return nil, err
	}
	return widget, nil
}

// submit binds fields onto widget, validates the result and applies it.
// Validation failures are returned as a validation_error problem and leave
// widget untouched.
func (h *WidgetHandler) submit(ctx context.Context, widget *domain.Widget, fields map[string]json.RawMessage, clearMissing bool) error {
	log := logger.FromContextOrDefault(ctx, h.logger)

	input := WidgetInput{Name: widget.Name, Description: widget.Description}
	form, failed := bindWidget(&input, fields, clearMissing)

	constraints := validation.FormFor(&input)
	if err := h.validator.Validate(constraints, &input); err != nil {
		return err
	}
	mergeFieldErrors(form, constraints, failed)

	name := form.Field("name")
	if name.Valid() {
		taken, err := h.widgets.NameTaken(ctx, input.Name, widget.ID)
		if err != nil {
			return err
		}
		if taken {
			name.AddError(msgNameTaken)
		}
	}

	if !form.Valid() {
		log.Debug("widget input rejected", slog.Int64("widget_id", widget.ID))
		return problem.ValidationFailed(validation.Collect(form))
	}

	widget.Name = input.Name
	widget.Description = domain.NormalizeDescription(input.Description)
	return nil
}

// saveError maps a failed store write. A name conflict that slipped past
// the uniqueness check is reported like the check itself.
func saveError(err error, rawID string) error {
	switch {
	case errors.Is(err, store.ErrWidgetNameExists):
		form := validation.FormFor(&WidgetInput{})
		form.Field("name").AddError(msgNameTaken)
		return problem.ValidationFailed(validation.Collect(form))
	case errors.Is(err, store.ErrWidgetNotFound) && rawID != "":
		return widgetNotFound(rawID)
	default:
		return err
	}
}
