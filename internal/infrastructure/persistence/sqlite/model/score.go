package model

type Score struct {
	ScoreID     uint64  `gorm:"column:score_id;primaryKey;autoIncrement"`
	ProjectID   string  `gorm:"column:project_id;type:text;not null;index"`
	VendorID    string  `gorm:"column:vendor_id;type:text;not null;index:idx_scores_vendor_criterion"`
	CriterionID string  `gorm:"column:criterion_id;type:text;not null;index:idx_scores_vendor_criterion"`
	EvaluatorID string  `gorm:"column:evaluator_id;type:text;not null"`
	Value       float64 `gorm:"column:value;not null"`
	Rationale   string  `gorm:"column:rationale;type:text"`
	Submitted   bool    `gorm:"column:submitted;not null;default:0"`
}

func (Score) TableName() string {
	return "scores"
}

type ConsensusScore struct {
	ConsensusID uint64  `gorm:"column:consensus_id;primaryKey;autoIncrement"`
	ProjectID   string  `gorm:"column:project_id;type:text;not null;index"`
	VendorID    string  `gorm:"column:vendor_id;type:text;not null;uniqueIndex:idx_consensus_vendor_criterion"`
	CriterionID string  `gorm:"column:criterion_id;type:text;not null;uniqueIndex:idx_consensus_vendor_criterion"`
	Value       float64 `gorm:"column:value;not null"`
	Rationale   string  `gorm:"column:rationale;type:text"`
}

func (ConsensusScore) TableName() string {
	return "consensus_scores"
}
