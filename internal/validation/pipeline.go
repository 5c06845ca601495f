package validation

import (
	"catalog-ingest-service/internal/models"
	"catalog-ingest-service/internal/rowsource"
)

// Options tunes pipeline behavior. The zero value matches the observed
// source behavior: permissive, validate everything, gate nothing.
type Options struct {
	// Strict aborts downstream stages once an upstream stage reports any
	// error, instead of cascading against the ids that did validate.
	Strict bool
	// EnforceParentAgreement additionally checks that a sub-subcategory's
	// category_id matches its referenced subcategory's own category_id.
	EnforceParentAgreement bool
}

// Dataset is one kind's input to a pipeline run. Err carries a dataset-level
// read failure from the row source; Rows is ignored when Err is set.
type Dataset struct {
	Rows []rowsource.Row
	Err  error
}

// Pipeline runs the four entity validators in dependency order, feeding the
// identifier sets of each stage forward to the next. It is stateless per
// invocation and deterministic for a given input.
type Pipeline struct {
	specs []*KindSpec
	opts  Options
}

// NewPipeline builds a pipeline over the standard kind specs.
func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{specs: Specs(), opts: opts}
}

// Run validates every provided dataset in fixed order. A stage runs even if
// an earlier stage produced errors: it resolves references against whatever
// ids the earlier stage did validate, so a single run surfaces the full
// cascade of referential problems. A kind whose dataset could not be read
// contributes an empty identifier set and a dataset-level error; kinds with
// no dataset at all contribute an empty set silently.
func (p *Pipeline) Run(datasets map[models.Kind]*Dataset) *models.PipelineReport {
	out := &models.PipelineReport{
		Reports:    make([]*models.Report, 0, len(p.specs)),
		AllValid:   true,
		ReadyKinds: make([]models.Kind, 0, len(p.specs)),
	}
	parents := NewParentSets()

	failed := false
	for _, spec := range p.specs {
		if p.opts.Strict && failed {
			break
		}

		ds := datasets[spec.Kind]
		if ds == nil {
			// Nothing uploaded for this kind; downstream kinds validate
			// against an empty parent set.
			parents.set(spec.Kind, models.IDSet{}, nil)
			out.Reports = append(out.Reports, &models.Report{
				Kind:   spec.Kind,
				Errors: make([]models.RowError, 0),
			})
			continue
		}

		if ds.Err != nil {
			parents.set(spec.Kind, models.IDSet{}, nil)
			report := &models.Report{
				Kind:       spec.Kind,
				Provided:   true,
				Errors:     make([]models.RowError, 0),
				DatasetErr: ds.Err.Error(),
			}
			out.Reports = append(out.Reports, report)
			out.AllValid = false
			failed = true
			continue
		}

		result := spec.Validate(ds.Rows, parents, p.opts)
		parents.set(spec.Kind, result.IDs, result.Links)
		out.Reports = append(out.Reports, result.Report)

		if result.Report.Valid() {
			if result.Report.Provided {
				out.ReadyKinds = append(out.ReadyKinds, spec.Kind)
			}
		} else {
			out.AllValid = false
			failed = true
		}
	}

	return out
}

// ValidateKind runs a single kind's dataset against externally supplied
// parent sets, for callers that validate one file at a time.
func (p *Pipeline) ValidateKind(kind models.Kind, rows []rowsource.Row, parents *ParentSets) *Result {
	spec := SpecFor(kind)
	if spec == nil {
		return nil
	}
	if parents == nil {
		parents = NewParentSets()
	}
	return spec.Validate(rows, parents, p.opts)
}
