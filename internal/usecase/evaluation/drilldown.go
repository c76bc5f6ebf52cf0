package evaluation

import (
	"context"
	"fmt"

	"tracematrix/internal/domain/matrix"
	"tracematrix/internal/ports"
)

// Drilldown reconstructs the audit chain for one (requirement, vendor)
// pair. The requirement may be referenced by id or by its immutable code.
func (s *Service) Drilldown(ctx context.Context, projectID, requirementRef, vendorID string) (matrix.Drilldown, error) {
	_, ds, err := s.loadDataset(ctx, projectID, ports.RequirementFilter{})
	if err != nil {
		return matrix.Drilldown{}, err
	}

	var req *matrix.Requirement
	for i := range ds.Requirements {
		if ds.Requirements[i].ID == requirementRef || ds.Requirements[i].Code == requirementRef {
			req = &ds.Requirements[i]
			break
		}
	}
	if req == nil {
		return matrix.Drilldown{}, fmt.Errorf("requirement %s in project %s: %w", requirementRef, projectID, ports.ErrRequirementNotFound)
	}

	var vendor *matrix.Vendor
	for i := range ds.Vendors {
		if ds.Vendors[i].ID == vendorID {
			vendor = &ds.Vendors[i]
			break
		}
	}
	if vendor == nil {
		return matrix.Drilldown{}, fmt.Errorf("vendor %s in project %s: %w", vendorID, projectID, ports.ErrVendorNotFound)
	}

	return matrix.BuildDrilldown(*req, *vendor, ds), nil
}
