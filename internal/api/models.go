package api

import (
	"fmt"

	"github.com/phrazzld/widget-api/internal/domain"
)

// Messages reported for widget input.
const (
	msgNameBlank      = "Name field should not be blank"
	msgNameTaken      = "That name is taken!"
	msgExtraFields    = "This form should not contain extra fields."
	msgInvalidValue   = "This value is not valid."
	msgTooLongPattern = "%s can not be longer then %s characters!"
)

// WidgetInput is the writable part of a widget as accepted by POST, PUT
// and PATCH.
type WidgetInput struct {
	Name        string  `json:"name"        validate:"required,max=20"`
	Description *string `json:"description" validate:"omitempty,max=100"`
}

// ValidationMessage implements validation.MessageProvider.
func (WidgetInput) ValidationMessage(field, tag, param string) (string, bool) {
	switch {
	case field == "name" && tag == "required":
		return msgNameBlank, true
	case field == "name" && tag == "max":
		return fmt.Sprintf(msgTooLongPattern, "Name", param), true
	case field == "description" && tag == "max":
		return fmt.Sprintf(msgTooLongPattern, "Description", param), true
	default:
		return "", false
	}
}

// WidgetListResponse is the body of GET /widgets.
type WidgetListResponse struct {
	Widgets []*domain.Widget `json:"widgets"`
}
