package appointment

type AvailabilityInput struct {
	Date  string
	ProID uint
}

type Availability struct {
	Available []string `json:"availableSlots"`
	Booked    []string `json:"bookedSlots"`
}
