package appointment

import "errors"

// Códigos de negócio expostos pela API
const (
	CodeSlotConflict      = "slot_conflict"
	CodeInvalidStatus     = "invalid_status"
	CodeNotFound          = "appointment_not_found"
	CodeInvalidDateOrTime = "invalid_date_or_time"
	CodeInvalidEmail      = "invalid_email"
	CodeInvalidRequest    = "invalid_request"
)

// ErrNotFound é devolvido pelos repositórios quando o id não existe.
var ErrNotFound = errors.New("appointment not found")
