package entities

// VehicleRequest creates or updates a saved vehicle.
type VehicleRequest struct {
	Plate       string `json:"plate"`
	VehicleType string `json:"vehicle_type"`
	Brand       string `json:"brand,omitempty"`
	Model       string `json:"model,omitempty"`
	Nickname    string `json:"nickname,omitempty"`
	IsPrimary   bool   `json:"is_primary,omitempty"`
}

// VehicleResponse is a saved vehicle as shown in the dashboard and at
// wizard step 0.
type VehicleResponse struct {
	ID          int    `json:"id"`
	Plate       string `json:"plate"`
	VehicleType string `json:"vehicle_type"`
	Brand       string `json:"brand,omitempty"`
	Model       string `json:"model,omitempty"`
	Nickname    string `json:"nickname,omitempty"`
	IsPrimary   bool   `json:"is_primary"`
}

// ReviewRequest creates a dashboard review.
type ReviewRequest struct {
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Language string `json:"language,omitempty"`
}

// ReviewResponse is a review, both in the dashboard and on the public
// testimonials list once approved.
type ReviewResponse struct {
	ID        int    `json:"id"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Language  string `json:"language,omitempty"`
	Approved  bool   `json:"approved"`
	CreatedAt string `json:"created_at"`
}
