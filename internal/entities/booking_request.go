package entities

// BookingRequest is the payload a complete wizard draft submits.
type BookingRequest struct {
	VehicleTypeID string `json:"vehicle_type_id"`
	ServiceID     string `json:"service_id"`
	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email"`
	ClientPhone   string `json:"client_phone,omitempty"`
	VehiclePlate  string `json:"vehicle_plate"`
	BookingDate   string `json:"booking_date"` // YYYY-MM-DD
	BookingTime   string `json:"booking_time"` // HH:MM
	Language      string `json:"language,omitempty"`
}

// BookingResponse is what handlers return for a stored booking.
type BookingResponse struct {
	Code         string `json:"code"`
	VehiclePlate string `json:"vehicle_plate"`
	VehicleType  string `json:"vehicle_type"`
	ServiceID    string `json:"service_id"`
	ServiceName  string `json:"service_name,omitempty"`
	ClientName   string `json:"client_name"`
	ClientEmail  string `json:"client_email"`
	ClientPhone  string `json:"client_phone,omitempty"`
	BookingDate  string `json:"booking_date"`
	BookingTime  string `json:"booking_time"`
	TotalPrice   int    `json:"total_price"`
	Status       string `json:"status"`
	Language     string `json:"language,omitempty"`
}

// ConfirmationResponse wraps the created booking plus, when an account was
// auto-provisioned during submission, the one-time generated credentials.
type ConfirmationResponse struct {
	Booking     BookingResponse `json:"booking"`
	Message     string          `json:"message"`
	NewAccount  bool            `json:"new_account"`
	Credentials *Credentials    `json:"credentials,omitempty"`
	Token       string          `json:"token,omitempty"`
}

// Credentials is shown exactly once on the confirmation screen.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
