package evaluation

import (
	"tracematrix/internal/domain/matrix"
	"tracematrix/internal/ports"
)

// Config carries the tunable evaluation policies resolved at startup.
// A per-run scoring profile may override parts of it.
type Config struct {
	// EligibleStatuses is the vendor status allow-list for matrix builds.
	EligibleStatuses []string
	Thresholds       matrix.Thresholds
	Consensus        matrix.ConsensusSelection
	GapDisplayCap    int
	Rules            matrix.RuleConfig
}

// DefaultConfig returns the standard evaluation policies.
func DefaultConfig() Config {
	return Config{
		EligibleStatuses: []string{"evaluating", "shortlisted", "selected"},
		Thresholds:       matrix.DefaultThresholds(),
		Consensus:        matrix.SelectFirst,
		GapDisplayCap:    matrix.DefaultGapDisplayCap,
		Rules:            matrix.DefaultRuleConfig(),
	}
}

// Service exposes the evaluation engine: matrix builds, coverage, insight
// generation and lifecycle, drilldown and export.
type Service struct {
	repo     ports.EvaluationRepository
	insights ports.InsightRepository
	uow      ports.UnitOfWork
	cache    ports.Cache
	cfg      Config
}

// NewService wires evaluation usecases with repositories and optional cache.
func NewService(repo ports.EvaluationRepository, insights ports.InsightRepository, uow ports.UnitOfWork, cache ports.Cache, cfg Config) *Service {
	if len(cfg.EligibleStatuses) == 0 {
		cfg.EligibleStatuses = DefaultConfig().EligibleStatuses
	}
	if cfg.Consensus == "" {
		cfg.Consensus = matrix.SelectFirst
	}
	if cfg.GapDisplayCap <= 0 {
		cfg.GapDisplayCap = matrix.DefaultGapDisplayCap
	}
	return &Service{
		repo:     repo,
		insights: insights,
		uow:      uow,
		cache:    cache,
		cfg:      cfg,
	}
}
