package evaluation

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"tracematrix/internal/domain/matrix"
	"tracematrix/internal/errs"
)

// Profile is a per-run scoring policy loaded from a TOML file. It makes
// the policy knobs explicit for a single invocation without touching the
// service configuration.
type Profile struct {
	Thresholds matrix.Thresholds
	Consensus  matrix.ConsensusSelection
	// EnabledRules is nil for the full default chain, otherwise the subset
	// of rule names to run, applied in default chain order.
	EnabledRules []string
	TieBreak     string
}

type profileFile struct {
	Thresholds struct {
		Green float64 `toml:"green"`
		Amber float64 `toml:"amber"`
	} `toml:"thresholds"`
	Consensus struct {
		Selection string `toml:"selection"`
	} `toml:"consensus"`
	Rules struct {
		Enabled []string `toml:"enabled"`
	} `toml:"rules"`
	Leader struct {
		TieBreak string `toml:"tie_break"`
	} `toml:"leader"`
}

var knownRuleNames = []string{
	string(matrix.InsightProgressUpdate),
	string(matrix.InsightCoverageGap),
	string(matrix.InsightCategoryLeader),
	string(matrix.InsightConsensusNeeded),
	string(matrix.InsightRiskArea),
}

// LoadProfile reads and validates a scoring profile. Unset sections fall
// back to the provided defaults.
func LoadProfile(path string, defaults Config) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrapf(err, "read profile %s", path)
	}

	var file profileFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return nil, errs.Wrapf(err, "parse profile %s", path)
	}

	profile := &Profile{
		Thresholds: defaults.Thresholds,
		Consensus:  defaults.Consensus,
		TieBreak:   "vendor-order",
	}

	if file.Thresholds.Green != 0 || file.Thresholds.Amber != 0 {
		profile.Thresholds = matrix.Thresholds{
			Green: file.Thresholds.Green,
			Amber: file.Thresholds.Amber,
		}
		if err := profile.Thresholds.Validate(); err != nil {
			return nil, errs.Wrapf(err, "profile %s thresholds", path)
		}
	}

	switch file.Consensus.Selection {
	case "":
	case string(matrix.SelectFirst):
		profile.Consensus = matrix.SelectFirst
	case string(matrix.SelectMean):
		profile.Consensus = matrix.SelectMean
	default:
		return nil, fmt.Errorf("profile %s: unknown consensus selection %q", path, file.Consensus.Selection)
	}

	if len(file.Rules.Enabled) > 0 {
		for _, name := range file.Rules.Enabled {
			if !slices.Contains(knownRuleNames, name) {
				return nil, fmt.Errorf("profile %s: unknown rule %q", path, name)
			}
		}
		profile.EnabledRules = file.Rules.Enabled
	}

	switch file.Leader.TieBreak {
	case "", "vendor-order":
	default:
		return nil, errors.New("profile " + path + ": unknown leader tie_break " + file.Leader.TieBreak)
	}

	return profile, nil
}

// rules returns the rule chain the profile selects, in default order.
func (p *Profile) rules() []matrix.Rule {
	all := matrix.DefaultRules()
	if p == nil || p.EnabledRules == nil {
		return all
	}

	selected := make([]matrix.Rule, 0, len(all))
	for _, rule := range all {
		if slices.Contains(p.EnabledRules, rule.Name()) {
			selected = append(selected, rule)
		}
	}
	return selected
}
