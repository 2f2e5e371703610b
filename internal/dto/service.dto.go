package dto

// UpdateServiceRequest campos ausentes não são alterados
type UpdateServiceRequest struct {
	Name     *string  `json:"name"`
	Duration *int     `json:"duration"`
	Price    *float64 `json:"price"`
}
