package model

type Evidence struct {
	EvidenceID string `gorm:"column:evidence_id;type:text;primaryKey"`
	ProjectID  string `gorm:"column:project_id;type:text;not null;index"`
	VendorID   string `gorm:"column:vendor_id;type:text;not null;index"`
	Type       string `gorm:"column:type;type:text;not null"`
	Summary    string `gorm:"column:summary;type:text"`
	CreatedAt  string `gorm:"column:created_at;type:text;not null"`
}

func (Evidence) TableName() string {
	return "evidence"
}

// EvidenceLink ties one evidence record to a requirement and/or a
// criterion. Either target may be empty, not both.
type EvidenceLink struct {
	LinkID        uint64 `gorm:"column:link_id;primaryKey;autoIncrement"`
	EvidenceID    string `gorm:"column:evidence_id;type:text;not null;index"`
	RequirementID string `gorm:"column:requirement_id;type:text;index"`
	CriterionID   string `gorm:"column:criterion_id;type:text;index"`
}

func (EvidenceLink) TableName() string {
	return "evidence_links"
}
