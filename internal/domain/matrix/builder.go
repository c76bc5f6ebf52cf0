package matrix

import "sort"

// UncategorizedID is the synthetic bucket for requirements without a
// category. It always sorts last.
const UncategorizedID = "uncategorized"

// RowKind separates category header rows from requirement rows.
type RowKind string

const (
	RowCategory    RowKind = "category"
	RowRequirement RowKind = "requirement"
)

// Row is one matrix row: either a category header or a requirement with one
// cell per vendor in matrix vendor order.
type Row struct {
	Kind         RowKind
	CategoryID   string
	CategoryName string
	// CategoryWeight is carried on category header rows only.
	CategoryWeight float64
	Requirement    *Requirement
	Cells          []Cell
}

// VendorTotals are the per-vendor running accumulators maintained while the
// matrix is assembled. WeightedScore and TotalWeight use the mean linked
// criterion weight per requirement (1 when none declared).
type VendorTotals struct {
	VendorID      string
	TotalScore    float64
	WeightedScore float64
	ScoredCount   int
	TotalWeight   float64
}

// Matrix is the assembled traceability matrix for one project snapshot.
// Deterministic given identical inputs: no clock, no randomness.
type Matrix struct {
	ProjectID        string
	Vendors          []Vendor // name ascending
	Rows             []Row
	Totals           []VendorTotals // aligned with Vendors
	RequirementCount int
}

// BuildOptions carries the tunable policies of one build.
type BuildOptions struct {
	Thresholds Thresholds
	Consensus  ConsensusSelection
}

// DefaultBuildOptions returns the standard build policies.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		Thresholds: DefaultThresholds(),
		Consensus:  SelectFirst,
	}
}

// Build arranges requirements into category-grouped rows and evaluates one
// cell per (requirement, vendor) pair, accumulating per-vendor totals.
func Build(ds Dataset, opts BuildOptions) Matrix {
	if opts.Consensus == "" {
		opts.Consensus = SelectFirst
	}

	idx := BuildIndex(ds)

	vendors := make([]Vendor, len(ds.Vendors))
	copy(vendors, ds.Vendors)
	sort.SliceStable(vendors, func(i, j int) bool {
		if vendors[i].Name != vendors[j].Name {
			return vendors[i].Name < vendors[j].Name
		}
		return vendors[i].ID < vendors[j].ID
	})

	m := Matrix{
		ProjectID:        ds.ProjectID,
		Vendors:          vendors,
		Totals:           make([]VendorTotals, len(vendors)),
		RequirementCount: len(ds.Requirements),
	}
	for i, vendor := range vendors {
		m.Totals[i] = VendorTotals{VendorID: vendor.ID}
	}

	byCategory := make(map[string][]Requirement, len(ds.Categories)+1)
	for _, req := range ds.Requirements {
		categoryID := req.CategoryID
		if categoryID == "" {
			categoryID = UncategorizedID
		}
		byCategory[categoryID] = append(byCategory[categoryID], req)
	}

	buckets := make([]Category, 0, len(ds.Categories)+1)
	buckets = append(buckets, ds.Categories...)
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].SortOrder < buckets[j].SortOrder })
	if len(byCategory[UncategorizedID]) > 0 {
		buckets = append(buckets, Category{ID: UncategorizedID, Name: "Uncategorized"})
	}

	for _, category := range buckets {
		requirements := byCategory[category.ID]
		if len(requirements) == 0 {
			continue
		}
		// Priority descending, existing order within equal priority.
		sort.SliceStable(requirements, func(i, j int) bool {
			return requirements[i].Priority > requirements[j].Priority
		})

		m.Rows = append(m.Rows, Row{
			Kind:           RowCategory,
			CategoryID:     category.ID,
			CategoryName:   category.Name,
			CategoryWeight: category.Weight,
		})

		for i := range requirements {
			req := requirements[i]
			row := Row{
				Kind:         RowRequirement,
				CategoryID:   category.ID,
				CategoryName: category.Name,
				Requirement:  &requirements[i],
				Cells:        make([]Cell, 0, len(vendors)),
			}

			weight := averageCriterionWeight(req, idx)
			for vi, vendor := range vendors {
				cell := EvaluateCell(req, vendor.ID, idx, opts.Thresholds, opts.Consensus)
				row.Cells = append(row.Cells, cell)

				if cell.Value != nil {
					m.Totals[vi].TotalScore += *cell.Value
					m.Totals[vi].WeightedScore += *cell.Value * weight
					m.Totals[vi].ScoredCount++
					m.Totals[vi].TotalWeight += weight
				}
			}
			m.Rows = append(m.Rows, row)
		}
	}

	return m
}

// averageCriterionWeight is the mean declared weight across a requirement's
// linked criteria, defaulting to 1 when no linked criterion resolves.
func averageCriterionWeight(req Requirement, idx Index) float64 {
	var sum float64
	var count int
	for _, criterionID := range req.CriterionIDs {
		criterion, ok := idx.Criteria[criterionID]
		if !ok {
			continue
		}
		sum += criterion.Weight
		count++
	}
	if count == 0 {
		return 1
	}
	return sum / float64(count)
}
