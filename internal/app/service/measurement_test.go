package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asif-dev/machbazar-storefront/internal/app/model"
)

func TestResolveMeasurement_ProductDefaults(t *testing.T) {
	product := &model.Product{Measurement: 0.5, Unit: model.UnitKilogram}

	measurement, unit := ResolveMeasurement(product, "")
	assert.Equal(t, 0.5, measurement)
	assert.Equal(t, model.UnitKilogram, unit)
}

func TestResolveMeasurement_VariantOverrides(t *testing.T) {
	product := &model.Product{
		Measurement: 1,
		Unit:        model.UnitKilogram,
		Variants: []model.Variant{
			{ID: "v1", Measurement: 0.25, Unit: model.UnitLiter},
		},
	}

	measurement, unit := ResolveMeasurement(product, "v1")
	assert.Equal(t, 0.25, measurement)
	assert.Equal(t, model.UnitLiter, unit)
}

func TestResolveMeasurement_VariantPartialOverride(t *testing.T) {
	// zero measurement and empty unit on the variant fall back to the product
	product := &model.Product{
		Measurement: 2,
		Unit:        model.UnitKilogram,
		Variants: []model.Variant{
			{ID: "v1"},
		},
	}

	measurement, unit := ResolveMeasurement(product, "v1")
	assert.Equal(t, float64(2), measurement)
	assert.Equal(t, model.UnitKilogram, unit)
}

func TestResolveMeasurement_NonPositiveCollapsesToOne(t *testing.T) {
	product := &model.Product{Measurement: 0, Unit: model.UnitPiece}

	measurement, _ := ResolveMeasurement(product, "")
	assert.Equal(t, float64(1), measurement)

	product.Measurement = -3
	measurement, _ = ResolveMeasurement(product, "")
	assert.Equal(t, float64(1), measurement)
}

func TestResolveMeasurement_UnknownVariantUsesProduct(t *testing.T) {
	product := &model.Product{
		Measurement: 1.5,
		Unit:        model.UnitKilogram,
		Variants:    []model.Variant{{ID: "v1", Measurement: 9}},
	}

	measurement, unit := ResolveMeasurement(product, "missing")
	assert.Equal(t, 1.5, measurement)
	assert.Equal(t, model.UnitKilogram, unit)
}

func TestResolveLineMeasurement_SnapshotOverride(t *testing.T) {
	line := &model.CartLine{
		Measurement:     1,
		Unit:            model.UnitKilogram,
		VariantSnapshot: &model.Variant{Measurement: 0.5, Unit: model.UnitGram},
	}

	measurement, unit := ResolveLineMeasurement(line)
	assert.Equal(t, 0.5, measurement)
	assert.Equal(t, model.UnitGram, unit)
}

func TestLineWeightKg(t *testing.T) {
	line := &model.CartLine{Measurement: 0.5, Unit: model.UnitKilogram, Quantity: 4}
	assert.Equal(t, float64(2), LineWeightKg(line))

	// legacy line with no measurement counts each unit as one
	legacy := &model.CartLine{Quantity: 3}
	assert.Equal(t, float64(3), LineWeightKg(legacy))
}
