package wizard

import (
	"regexp"
	"strings"

	"detallado/internal/catalog"
)

// Chilean plate shapes: AAA-000 for cars and SUVs, AAA-00 or AAA-00A for
// motorcycles.
var (
	platePattern     = regexp.MustCompile(`^[A-Z]{3}-\d{3}$`)
	motoPlatePattern = regexp.MustCompile(`^[A-Z]{3}-\d{2}[A-Z]?$`)
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// FormatPlate normalizes raw plate input: uppercase, alphanumerics only,
// a hyphen re-inserted after the 3rd character, capped at 7 characters total.
func FormatPlate(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if len(clean) > 6 {
		clean = clean[:6]
	}
	if len(clean) <= 3 {
		return clean
	}
	return clean[:3] + "-" + clean[3:]
}

// ValidPlate reports whether a formatted plate matches the grammar for the
// given vehicle type. Motorcycles allow a shorter plate with an optional
// trailing letter; everything else requires 3 letters + 3 digits.
func ValidPlate(plate, vehicleTypeID string) bool {
	if vehicleTypeID == catalog.VehicleMotorcycle {
		return motoPlatePattern.MatchString(plate)
	}
	return platePattern.MatchString(plate)
}

// ValidEmail checks the usual email grammar.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
