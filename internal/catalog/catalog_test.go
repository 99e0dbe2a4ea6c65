package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVehicleTypeByID(t *testing.T) {
	vt, err := VehicleTypeByID("car")
	require.NoError(t, err)
	require.Equal(t, 1.0, vt.PriceMultiplier)

	vt, err = VehicleTypeByID("suv")
	require.NoError(t, err)
	require.Equal(t, 1.2, vt.PriceMultiplier)

	vt, err = VehicleTypeByID("motorcycle")
	require.NoError(t, err)
	require.Equal(t, 0.8, vt.PriceMultiplier)

	_, err = VehicleTypeByID("truck")
	require.Error(t, err)
}

func TestServiceByID(t *testing.T) {
	svc, err := ServiceByID("basic")
	require.NoError(t, err)
	require.Equal(t, 50000, svc.Price)
	require.NotEmpty(t, svc.Features)

	_, err = ServiceByID("deluxe")
	require.Error(t, err)
}

func TestTotalPrice(t *testing.T) {
	// basic on a car: 50000 × 1.0
	total, err := TotalPrice("basic", "car")
	require.NoError(t, err)
	require.Equal(t, 50000, total)

	// premium on an SUV: 120000 × 1.2
	total, err = TotalPrice("premium", "suv")
	require.NoError(t, err)
	require.Equal(t, 144000, total)

	// complete on a motorcycle: 80000 × 0.8
	total, err = TotalPrice("complete", "motorcycle")
	require.NoError(t, err)
	require.Equal(t, 64000, total)
}

func TestTotalPriceUnknownIDs(t *testing.T) {
	_, err := TotalPrice("deluxe", "car")
	require.Error(t, err)
	_, err = TotalPrice("basic", "truck")
	require.Error(t, err)
}

func TestCatalogsAreCopies(t *testing.T) {
	types := VehicleTypes()
	types[0].PriceMultiplier = 99
	fresh, err := VehicleTypeByID(types[0].ID)
	require.NoError(t, err)
	require.Equal(t, 1.0, fresh.PriceMultiplier)
}
