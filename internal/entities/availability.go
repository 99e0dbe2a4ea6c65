package entities

// BookedSlot is one (date, time) pair taken by any customer's booking.
type BookedSlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// DayAvailability describes one calendar day for the schedule step.
type DayAvailability struct {
	Date       string   `json:"date"`
	Disabled   bool     `json:"disabled"`
	TakenSlots []string `json:"taken_slots,omitempty"`
	OpenSlots  []string `json:"open_slots,omitempty"`
}

// AvailabilityResponse covers one visible calendar month.
type AvailabilityResponse struct {
	From    string            `json:"from"`
	To      string            `json:"to"`
	Days    []DayAvailability `json:"days"`
	Partial bool              `json:"partial,omitempty"` // true when the fallback query may under-report
}
