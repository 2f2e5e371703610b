package dto

// Corpos de requisição da API de agendamentos (nomes do app web)

type CreateAppointmentRequest struct {
	Client      string `json:"client" binding:"required"`
	ClientEmail string `json:"clientEmail"`
	ClientPhone string `json:"clientPhone"`
	ProID       uint   `json:"proId" binding:"required"`
	ServiceID   uint   `json:"serviceId" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AvailableSlotsRequest struct {
	Date  string `json:"date" binding:"required"`
	ProID uint   `json:"proId" binding:"required"`
}
