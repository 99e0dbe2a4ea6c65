package entities

// BookingEmailData feeds the confirmation email templates.
type BookingEmailData struct {
	ClientName    string
	BookingCode   string
	ServiceName   string
	VehicleType   string
	VehiclePlate  string
	DateFormatted string
	TimeFormatted string
	TotalPrice    int
	CurrentYear   int
	Language      string
}

// WelcomeEmailData feeds the new-account email, sent on sign-up and on
// auto-provisioning during booking confirmation.
type WelcomeEmailData struct {
	ClientName  string
	Email       string
	Password    string // empty unless the account was auto-provisioned
	CurrentYear int
	Language    string
}

// PasswordResetEmailData feeds the reset email.
type PasswordResetEmailData struct {
	ClientName  string
	ResetLink   string
	CurrentYear int
	Language    string
}
