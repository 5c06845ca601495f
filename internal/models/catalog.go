package models

import "fmt"

// Kind identifies one level of the catalog hierarchy. Each uploaded dataset
// corresponds to exactly one kind.
type Kind string

const (
	KindCategory       Kind = "category"
	KindSubcategory    Kind = "subcategory"
	KindSubSubcategory Kind = "subsubcategory"
	KindProduct        Kind = "product"
)

// KindOrder is the fixed dependency order for validation and the recommended
// order for submission: parents before children.
var KindOrder = []Kind{KindCategory, KindSubcategory, KindSubSubcategory, KindProduct}

// ParseKind validates a kind string taken from a URL path or form field.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindCategory, KindSubcategory, KindSubSubcategory, KindProduct:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown catalog kind %q", s)
}

// SheetName returns the preferred worksheet name for this kind's dataset.
func (k Kind) SheetName() string {
	switch k {
	case KindCategory:
		return "Categories"
	case KindSubcategory:
		return "Subcategories"
	case KindSubSubcategory:
		return "SubSubcategories"
	case KindProduct:
		return "Products"
	}
	return ""
}

// ManagementPath is the admin view a client is directed to after a
// successful submission for this kind.
func (k Kind) ManagementPath() string {
	switch k {
	case KindCategory:
		return "/admin/categories"
	case KindSubcategory:
		return "/admin/subcategories"
	case KindSubSubcategory:
		return "/admin/subsubcategories"
	case KindProduct:
		return "/admin/products"
	}
	return "/admin"
}

// IDSet is the set of id values from rows of a kind that passed every
// per-row check. Child kinds resolve their foreign keys against it.
type IDSet map[string]struct{}

// NewIDSet builds a set from literal ids, mostly used by tests.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

func (s IDSet) Remove(id string) {
	delete(s, id)
}

func (s IDSet) Len() int {
	return len(s)
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     Error  `json:"error"`
	Timestamp string `json:"timestamp,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Error represents error details
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
