package matrix

// LevelKind identifies one stage of the evidentiary chain.
type LevelKind string

const (
	LevelSources     LevelKind = "sources"
	LevelRequirement LevelKind = "requirement"
	LevelEvidence    LevelKind = "evidence"
	LevelScores      LevelKind = "scores"
)

// DrilldownItem is one typed, labeled entry inside a level.
type DrilldownItem struct {
	Kind   string
	Label  string
	Detail string
	Value  *float64
}

// DrilldownLevel groups the items of one chain stage.
type DrilldownLevel struct {
	Kind  LevelKind
	Label string
	Items []DrilldownItem
}

// Drilldown is the ordered evidentiary chain for one (requirement, vendor)
// pair: sources, the requirement itself, linked evidence, then scores and
// consensus. Levels with zero items are omitted entirely.
type Drilldown struct {
	RequirementID string
	VendorID      string
	Levels        []DrilldownLevel
}

// BuildDrilldown reconstructs the audit chain from a dataset snapshot.
func BuildDrilldown(req Requirement, vendor Vendor, ds Dataset) Drilldown {
	d := Drilldown{
		RequirementID: req.ID,
		VendorID:      vendor.ID,
	}

	var sources []DrilldownItem
	if req.SourceDocument != "" {
		sources = append(sources, DrilldownItem{
			Kind:  "source_document",
			Label: req.SourceDocument,
		})
	}
	if req.StakeholderArea != "" {
		sources = append(sources, DrilldownItem{
			Kind:  "stakeholder_area",
			Label: req.StakeholderArea,
		})
	}
	d.appendLevel(LevelSources, "Sources", sources)

	d.appendLevel(LevelRequirement, "Requirement", []DrilldownItem{{
		Kind:   "requirement",
		Label:  req.Code,
		Detail: req.Title,
	}})

	var evidence []DrilldownItem
	for _, ev := range ds.Evidence {
		if ev.VendorID != vendor.ID || !linksRequirement(ev, req.ID) {
			continue
		}
		evidence = append(evidence, DrilldownItem{
			Kind:   ev.Type,
			Label:  ev.ID,
			Detail: ev.Summary,
		})
	}
	d.appendLevel(LevelEvidence, "Evidence", evidence)

	linked := make(map[string]struct{}, len(req.CriterionIDs))
	for _, criterionID := range req.CriterionIDs {
		linked[criterionID] = struct{}{}
	}

	var scores []DrilldownItem
	for _, score := range ds.Scores {
		if score.VendorID != vendor.ID {
			continue
		}
		if _, ok := linked[score.CriterionID]; !ok {
			continue
		}
		value := score.Value
		detail := score.Rationale
		if !score.Submitted {
			detail = "draft: " + detail
		}
		scores = append(scores, DrilldownItem{
			Kind:   "score",
			Label:  score.EvaluatorID,
			Detail: detail,
			Value:  &value,
		})
	}
	for _, consensus := range ds.ConsensusScores {
		if consensus.VendorID != vendor.ID {
			continue
		}
		if _, ok := linked[consensus.CriterionID]; !ok {
			continue
		}
		value := consensus.Value
		scores = append(scores, DrilldownItem{
			Kind:   "consensus_score",
			Label:  consensus.CriterionID,
			Detail: consensus.Rationale,
			Value:  &value,
		})
	}
	d.appendLevel(LevelScores, "Scores", scores)

	return d
}

func (d *Drilldown) appendLevel(kind LevelKind, label string, items []DrilldownItem) {
	if len(items) == 0 {
		return
	}
	d.Levels = append(d.Levels, DrilldownLevel{Kind: kind, Label: label, Items: items})
}

func linksRequirement(ev Evidence, requirementID string) bool {
	for _, id := range ev.RequirementIDs {
		if id == requirementID {
			return true
		}
	}
	return false
}
