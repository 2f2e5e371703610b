package appointment

import "github.com/BruksfildServices01/agendai-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

// ParseStatus valida o status recebido pela API
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", httperr.ErrBusiness(CodeInvalidStatus)
	}
	return s, nil
}

// InitialStatus de todo agendamento criado pelo fluxo de reserva
func InitialStatus() Status {
	return StatusPending
}
