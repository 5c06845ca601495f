package models

// ImportFormat represents the file format for import
type ImportFormat string

const (
	ImportFormatCSV  ImportFormat = "csv"
	ImportFormatXLSX ImportFormat = "xlsx"
)

// ImportTemplateColumn defines a column in the import template
type ImportTemplateColumn struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Type        string `json:"type"` // string, number, boolean
	Example     string `json:"example"`
}

// ImportTemplate defines the structure of an import template
type ImportTemplate struct {
	Entity     string                 `json:"entity"`
	Version    string                 `json:"version"`
	Columns    []ImportTemplateColumn `json:"columns"`
	SampleData []map[string]string    `json:"sampleData,omitempty"`
}

// CategoryImportColumns returns the column definitions for category import
func CategoryImportColumns() []ImportTemplateColumn {
	return []ImportTemplateColumn{
		{Name: "id", Description: "Category id, unique within the file", Required: true, Type: "string", Example: "1"},
		{Name: "name", Description: "Category name", Required: true, Type: "string", Example: "Cakes"},
		{Name: "slug", Description: "URL-friendly slug", Required: true, Type: "string", Example: "cakes"},
		{Name: "banner", Description: "Banner image URL", Required: false, Type: "string", Example: ""},
		{Name: "meta_title", Description: "SEO title", Required: false, Type: "string", Example: ""},
		{Name: "meta_description", Description: "SEO meta description", Required: false, Type: "string", Example: ""},
		{Name: "status", Description: "Active flag (true/false)", Required: false, Type: "boolean", Example: "true"},
		{Name: "created_at", Description: "Creation timestamp", Required: false, Type: "string", Example: ""},
	}
}

// SubcategoryImportColumns returns the column definitions for subcategory import
func SubcategoryImportColumns() []ImportTemplateColumn {
	return []ImportTemplateColumn{
		{Name: "id", Description: "Subcategory id, unique within the file", Required: true, Type: "string", Example: "10"},
		{Name: "name", Description: "Subcategory name", Required: true, Type: "string", Example: "Birthday"},
		{Name: "category_id", Description: "Id of an existing category", Required: true, Type: "string", Example: "1"},
		{Name: "banner", Description: "Banner image URL", Required: false, Type: "string", Example: ""},
		{Name: "meta_title", Description: "SEO title", Required: false, Type: "string", Example: ""},
		{Name: "meta_description", Description: "SEO meta description", Required: false, Type: "string", Example: ""},
		{Name: "status", Description: "Active flag (true/false)", Required: false, Type: "boolean", Example: "true"},
	}
}

// SubSubcategoryImportColumns returns the column definitions for sub-subcategory import
func SubSubcategoryImportColumns() []ImportTemplateColumn {
	return []ImportTemplateColumn{
		{Name: "id", Description: "Sub-subcategory id, unique within the file", Required: true, Type: "string", Example: "100"},
		{Name: "name", Description: "Sub-subcategory name", Required: true, Type: "string", Example: "Chocolate Cakes"},
		{Name: "category_id", Description: "Id of an existing category", Required: true, Type: "string", Example: "1"},
		{Name: "subcategory_id", Description: "Id of an existing subcategory", Required: true, Type: "string", Example: "10"},
		{Name: "banner", Description: "Banner image URL", Required: false, Type: "string", Example: ""},
		{Name: "status", Description: "Active flag (true/false)", Required: false, Type: "boolean", Example: "true"},
	}
}

// ProductImportColumns returns the column definitions for product import
func ProductImportColumns() []ImportTemplateColumn {
	return []ImportTemplateColumn{
		{Name: "id", Description: "Product id, unique within the file", Required: true, Type: "string", Example: "1000"},
		{Name: "name", Description: "Product name", Required: true, Type: "string", Example: "Rose Bouquet"},
		{Name: "price", Description: "Product price", Required: true, Type: "number", Example: "29.99"},
		{Name: "sale_price", Description: "Discounted price", Required: false, Type: "number", Example: ""},
		{Name: "category_id", Description: "Id of an existing category", Required: true, Type: "string", Example: "1"},
		{Name: "subcategory_id", Description: "Id of an existing subcategory", Required: false, Type: "string", Example: ""},
		{Name: "subsubcategory_id", Description: "Id of an existing sub-subcategory", Required: false, Type: "string", Example: ""},
		{Name: "sku", Description: "Stock keeping unit", Required: false, Type: "string", Example: "RSE-001"},
		{Name: "stock_quantity", Description: "Units in stock", Required: false, Type: "number", Example: "25"},
		{Name: "status", Description: "Active flag (true/false)", Required: false, Type: "boolean", Example: "true"},
		{Name: "in_stock", Description: "Availability flag (true/false)", Required: false, Type: "boolean", Example: "true"},
	}
}

// ImportTemplateFor returns the template definition for a kind
func ImportTemplateFor(kind Kind) ImportTemplate {
	switch kind {
	case KindCategory:
		return ImportTemplate{Entity: "categories", Version: "1.0", Columns: CategoryImportColumns()}
	case KindSubcategory:
		return ImportTemplate{Entity: "subcategories", Version: "1.0", Columns: SubcategoryImportColumns()}
	case KindSubSubcategory:
		return ImportTemplate{Entity: "subsubcategories", Version: "1.0", Columns: SubSubcategoryImportColumns()}
	case KindProduct:
		return ImportTemplate{Entity: "products", Version: "1.0", Columns: ProductImportColumns()}
	}
	return ImportTemplate{}
}
