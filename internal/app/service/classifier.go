package service

import "github.com/asif-dev/machbazar-storefront/internal/app/model"

// ClassifyProduct assigns the order-group kind for a catalog product. The
// normalized Kind tag set at ingestion wins; products that predate the tag
// fall through the heuristic markers in order of reliability.
func ClassifyProduct(p *model.Product) model.ProductKind {
	if p.Kind != "" {
		return p.Kind
	}
	if p.IsFish {
		return model.KindFish
	}
	if len(p.SizeCategories) > 0 {
		return model.KindFish
	}
	if p.Category == model.FishCategoryName && p.Unit == model.UnitKilogram {
		return model.KindFish
	}
	return model.KindRegular
}

// ClassifyLine assigns the order-group kind for a cart line. Lines written
// by current clients carry the Kind tag; legacy lines are classified from
// their snapshot: the explicit fish flag, then the presence of size
// categories, then the category/unit shape. The category/unit check only
// fires when the selected variant is also kilogram-denominated (or there is
// no variant), so a by-piece variant of a fish-category product stays in
// the regular group.
func ClassifyLine(line *model.CartLine) model.ProductKind {
	if line.Kind != "" {
		return line.Kind
	}
	if line.IsFish {
		return model.KindFish
	}
	if len(line.SizeCategories) > 0 {
		return model.KindFish
	}
	if line.Category == model.FishCategoryName && line.Unit == model.UnitKilogram {
		if line.VariantSnapshot == nil || line.VariantSnapshot.Unit == model.UnitKilogram {
			return model.KindFish
		}
	}
	return model.KindRegular
}

// PartitionLines splits a line collection into its regular and fish order
// groups, preserving cart order within each group.
func PartitionLines(lines []model.CartLine) (regular, fish []model.CartLine) {
	for _, line := range lines {
		if ClassifyLine(&line) == model.KindFish {
			fish = append(fish, line)
		} else {
			regular = append(regular, line)
		}
	}
	return regular, fish
}
