package validation

import "catalog-ingest-service/internal/models"

// Specs returns the per-kind validator configuration, in dependency order.
// Field lists follow the catalog spreadsheet templates.
func Specs() []*KindSpec {
	return []*KindSpec{
		{
			Kind:           models.KindCategory,
			RequiredFields: []string{"id", "name", "slug"},
			BooleanFields:  []string{"status"},
		},
		{
			Kind:           models.KindSubcategory,
			RequiredFields: []string{"id", "name", "category_id"},
			BooleanFields:  []string{"status"},
			ForeignKeys: []ForeignKey{
				{Field: "category_id", Parent: models.KindCategory},
			},
			LinkField: "category_id",
		},
		{
			Kind:           models.KindSubSubcategory,
			RequiredFields: []string{"id", "name", "category_id", "subcategory_id"},
			BooleanFields:  []string{"status"},
			ForeignKeys: []ForeignKey{
				{Field: "category_id", Parent: models.KindCategory},
				{Field: "subcategory_id", Parent: models.KindSubcategory},
			},
		},
		{
			Kind:           models.KindProduct,
			RequiredFields: []string{"id", "name", "price", "category_id"},
			BooleanFields:  []string{"status", "in_stock"},
			NumericFields:  []string{"price", "sale_price", "stock_quantity"},
			ForeignKeys: []ForeignKey{
				{Field: "category_id", Parent: models.KindCategory},
				{Field: "subcategory_id", Parent: models.KindSubcategory},
				{Field: "subsubcategory_id", Parent: models.KindSubSubcategory},
			},
		},
	}
}

// SpecFor returns the validator configuration for a single kind.
func SpecFor(kind models.Kind) *KindSpec {
	for _, spec := range Specs() {
		if spec.Kind == kind {
			return spec
		}
	}
	return nil
}
