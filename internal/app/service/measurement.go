package service

import "github.com/asif-dev/machbazar-storefront/internal/app/model"

// ResolveMeasurement determines the per-unit measurement and unit for a
// product, honoring a selected variant's overrides. A variant's measurement
// wins when positive; its unit wins when non-empty. A resolved measurement
// that is zero or negative collapses to 1 so weight math never multiplies
// by nothing.
func ResolveMeasurement(product *model.Product, variantID string) (float64, string) {
	measurement := product.Measurement
	unit := product.Unit

	if variant := product.FindVariant(variantID); variant != nil {
		if variant.Measurement > 0 {
			measurement = variant.Measurement
		}
		if variant.Unit != "" {
			unit = variant.Unit
		}
	}

	if measurement <= 0 {
		measurement = 1
	}
	return measurement, unit
}

// ResolveLineMeasurement re-derives the per-unit measurement and unit for a
// stored cart line from its snapshot, with the same variant-override and
// floor rules as ResolveMeasurement. Lines written by older clients may
// carry a zero measurement.
func ResolveLineMeasurement(line *model.CartLine) (float64, string) {
	measurement := line.Measurement
	unit := line.Unit

	if v := line.VariantSnapshot; v != nil {
		if v.Measurement > 0 {
			measurement = v.Measurement
		}
		if v.Unit != "" {
			unit = v.Unit
		}
	}

	if measurement <= 0 {
		measurement = 1
	}
	return measurement, unit
}

// LineWeightKg is the total kilogram weight a line contributes to a
// shipping quote. Lines not denominated in kilograms contribute their
// measurement as-is; the upstream quote service owns unit conversion for
// anything else.
func LineWeightKg(line *model.CartLine) float64 {
	measurement, _ := ResolveLineMeasurement(line)
	return measurement * line.Quantity
}
