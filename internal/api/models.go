package api

// Auth
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
	Language string `json:"language,omitempty"`
}
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
type UserResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Language string `json:"language"`
}
type PasswordResetRequest struct {
	Email string `json:"email"`
}
type PasswordResetConfirm struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Wizard actions
type SavedVehicleSelection struct {
	VehicleID int `json:"vehicle_id"`
}
type VehicleTypeSelection struct {
	VehicleTypeID string `json:"vehicle_type_id"`
}
type ServiceSelection struct {
	ServiceID string `json:"service_id"`
}
type ClientInfoPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Plate string `json:"plate"`
}
type SchedulePayload struct {
	Date string `json:"date,omitempty"`
	Time string `json:"time,omitempty"`
}
type JumpPayload struct {
	Step int `json:"step"`
}
