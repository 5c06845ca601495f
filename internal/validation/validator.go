package validation

import (
	"fmt"

	"catalog-ingest-service/internal/models"
	"catalog-ingest-service/internal/rowsource"
)

// ForeignKey declares a reference column and the parent kind whose
// identifier set it must resolve against.
type ForeignKey struct {
	Field  string
	Parent models.Kind
}

// KindSpec parameterizes the generic per-row validator for one kind. All
// four kinds share the same algorithm; only the field lists differ.
type KindSpec struct {
	Kind           models.Kind
	RequiredFields []string
	BooleanFields  []string
	NumericFields  []string
	ForeignKeys    []ForeignKey

	// LinkField, when set, exports an id -> reference map alongside the
	// identifier set. Subcategory exports its category_id links so the
	// sub-subcategory stage can optionally cross-check parent agreement.
	LinkField string
}

// Result is the outcome of validating one dataset.
type Result struct {
	Report *models.Report
	IDs    models.IDSet
	// Links maps a clean row's id to its LinkField value, empty unless the
	// spec declares one.
	Links map[string]string
}

// ParentSets carries the identifier sets produced by earlier stages, plus
// the link maps needed for deeper consistency checks.
type ParentSets struct {
	IDs   map[models.Kind]models.IDSet
	Links map[models.Kind]map[string]string
}

// NewParentSets returns an empty parent context, the input for the root kind.
func NewParentSets() *ParentSets {
	return &ParentSets{
		IDs:   make(map[models.Kind]models.IDSet),
		Links: make(map[models.Kind]map[string]string),
	}
}

func (p *ParentSets) set(kind models.Kind, ids models.IDSet, links map[string]string) {
	p.IDs[kind] = ids
	if links != nil {
		p.Links[kind] = links
	}
}

// idsFor returns the identifier set for a parent kind; a kind that never ran
// (or failed to load) contributes an empty set, so every child reference
// against it reports as invalid rather than silently passing.
func (p *ParentSets) idsFor(kind models.Kind) models.IDSet {
	if ids, ok := p.IDs[kind]; ok {
		return ids
	}
	return models.IDSet{}
}

// Validate runs the full dataset of one kind through per-row validation.
// Errors accumulate: a row with several independent problems reports all of
// them, and the dataset is always scanned to the end. Only rows with zero
// errors contribute their id to the output identifier set.
func (spec *KindSpec) Validate(rows []rowsource.Row, parents *ParentSets, opts Options) *Result {
	report := &models.Report{
		Kind:      spec.Kind,
		Provided:  true,
		TotalRows: len(rows),
		Errors:    make([]models.RowError, 0),
	}
	ids := make(models.IDSet)
	links := make(map[string]string)

	// Ids seen so far in this dataset, valid or not. Duplicate detection is
	// the one ordering-sensitive check.
	seen := make(map[string]bool)
	// Ids withdrawn from the output set because a later row duplicated them.
	poisoned := make(map[string]bool)

	for _, row := range rows {
		errsBefore := len(report.Errors)

		for _, field := range spec.BooleanFields {
			if cerr := Coerce(field, row.Get(field), FieldBoolean); cerr != nil {
				report.Errors = append(report.Errors, models.RowError{
					Row:     row.Num,
					Field:   cerr.Field,
					Code:    models.ErrInvalidFormat,
					Message: cerr.String(),
				})
			}
		}

		for _, field := range spec.NumericFields {
			if cerr := Coerce(field, row.Get(field), FieldNumeric); cerr != nil {
				report.Errors = append(report.Errors, models.RowError{
					Row:     row.Num,
					Field:   cerr.Field,
					Code:    models.ErrInvalidFormat,
					Message: cerr.String(),
				})
			}
		}

		for _, field := range spec.RequiredFields {
			if row.Get(field) == "" {
				report.Errors = append(report.Errors, models.RowError{
					Row:     row.Num,
					Field:   field,
					Code:    models.ErrMissingRequiredField,
					Message: fmt.Sprintf("required field '%s' is empty", field),
				})
			}
		}

		id := row.Get("id")
		duplicate := false
		if id != "" {
			if seen[id] {
				duplicate = true
				report.Errors = append(report.Errors, models.RowError{
					Row:     row.Num,
					Field:   "id",
					Code:    models.ErrDuplicateID,
					Message: fmt.Sprintf("id '%s' appears more than once in this dataset", id),
				})
				// Neither occurrence of a duplicated id is trustworthy; the
				// earlier row's id is withdrawn from the output set too.
				if ids.Has(id) {
					ids.Remove(id)
					delete(links, id)
				}
				poisoned[id] = true
			}
			seen[id] = true
		}

		for _, fk := range spec.ForeignKeys {
			value := row.Get(fk.Field)
			if value == "" {
				continue
			}
			if !parents.idsFor(fk.Parent).Has(value) {
				report.Errors = append(report.Errors, models.RowError{
					Row:     row.Num,
					Field:   fk.Field,
					Code:    models.ErrInvalidReference,
					Message: fmt.Sprintf("%s '%s' does not match any valid %s id", fk.Field, value, fk.Parent),
				})
			}
		}

		if opts.EnforceParentAgreement && spec.Kind == models.KindSubSubcategory {
			spec.checkParentAgreement(row, parents, report)
		}

		if len(report.Errors) == errsBefore && id != "" && !duplicate && !poisoned[id] {
			ids.Add(id)
			if spec.LinkField != "" {
				links[id] = row.Get(spec.LinkField)
			}
			report.CleanRows++
		}
	}

	report.ValidIDs = ids.Len()
	result := &Result{Report: report, IDs: ids}
	if spec.LinkField != "" {
		result.Links = links
	}
	return result
}

// checkParentAgreement verifies that a sub-subcategory's stated category_id
// agrees with the category_id of the subcategory it references. Only
// meaningful when both references resolved; dangling ones already reported
// as invalid.
func (spec *KindSpec) checkParentAgreement(row rowsource.Row, parents *ParentSets, report *models.Report) {
	subID := row.Get("subcategory_id")
	catID := row.Get("category_id")
	if subID == "" || catID == "" {
		return
	}
	links, ok := parents.Links[models.KindSubcategory]
	if !ok {
		return
	}
	parentCat, ok := links[subID]
	if !ok {
		return
	}
	if parentCat != catID {
		report.Errors = append(report.Errors, models.RowError{
			Row:     row.Num,
			Field:   "category_id",
			Code:    models.ErrInvalidReference,
			Message: fmt.Sprintf("category_id '%s' disagrees with subcategory '%s' which belongs to category '%s'", catID, subID, parentCat),
		})
	}
}
