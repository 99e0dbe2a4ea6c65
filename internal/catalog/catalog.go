package catalog

import (
	"fmt"
	"math"
)

// VehicleType describes one entry of the fixed vehicle catalog.
// Prices scale by the multiplier, so an SUV wash costs more than a car wash.
type VehicleType struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	PriceMultiplier float64 `json:"price_multiplier"`
	Description     string  `json:"description"`
}

// Service describes one entry of the fixed service catalog.
// Price is in whole Chilean pesos.
type Service struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int      `json:"price"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

const (
	VehicleCar        = "car"
	VehicleSUV        = "suv"
	VehicleMotorcycle = "motorcycle"
)

var vehicleTypes = []VehicleType{
	{ID: VehicleCar, Name: "Auto", PriceMultiplier: 1.0, Description: "Sedán, hatchback o city car"},
	{ID: VehicleSUV, Name: "SUV / Camioneta", PriceMultiplier: 1.2, Description: "SUV, camioneta o furgón"},
	{ID: VehicleMotorcycle, Name: "Moto", PriceMultiplier: 0.8, Description: "Motocicleta o scooter"},
}

var services = []Service{
	{
		ID:          "basic",
		Name:        "Lavado Básico",
		Price:       50000,
		Description: "Lavado exterior e interior esencial",
		Features:    []string{"Lavado exterior a mano", "Aspirado interior", "Limpieza de vidrios", "Brillo de neumáticos"},
	},
	{
		ID:          "complete",
		Name:        "Detailing Completo",
		Price:       80000,
		Description: "Limpieza profunda interior y exterior",
		Features:    []string{"Todo lo del básico", "Descontaminación de pintura", "Limpieza de tapiz y alfombras", "Acondicionador de plásticos", "Cera sellante"},
	},
	{
		ID:          "premium",
		Name:        "Detailing Premium",
		Price:       120000,
		Description: "Corrección de pintura y protección cerámica",
		Features:    []string{"Todo lo del completo", "Pulido de corrección en 2 etapas", "Sellado cerámico 12 meses", "Tratamiento de cueros", "Restauración de focos"},
	},
}

// VehicleTypes returns the full fixed catalog, in display order.
func VehicleTypes() []VehicleType {
	out := make([]VehicleType, len(vehicleTypes))
	copy(out, vehicleTypes)
	return out
}

// Services returns the full fixed catalog, in display order.
func Services() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

func VehicleTypeByID(id string) (VehicleType, error) {
	for _, vt := range vehicleTypes {
		if vt.ID == id {
			return vt, nil
		}
	}
	return VehicleType{}, fmt.Errorf("unknown vehicle type %q", id)
}

func ServiceByID(id string) (Service, error) {
	for _, s := range services {
		if s.ID == id {
			return s, nil
		}
	}
	return Service{}, fmt.Errorf("unknown service %q", id)
}

// TotalPrice computes the booking total in whole pesos:
// service price times the vehicle-type multiplier, rounded.
func TotalPrice(serviceID, vehicleTypeID string) (int, error) {
	svc, err := ServiceByID(serviceID)
	if err != nil {
		return 0, err
	}
	vt, err := VehicleTypeByID(vehicleTypeID)
	if err != nil {
		return 0, err
	}
	return int(math.Round(float64(svc.Price) * vt.PriceMultiplier)), nil
}
