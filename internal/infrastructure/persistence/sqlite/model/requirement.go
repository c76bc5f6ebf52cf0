package model

type Requirement struct {
	RequirementID   string `gorm:"column:requirement_id;type:text;primaryKey"`
	ProjectID       string `gorm:"column:project_id;type:text;not null;index"`
	Code            string `gorm:"column:code;type:text;not null"`
	Title           string `gorm:"column:title;type:text;not null"`
	Priority        int    `gorm:"column:priority;not null;default:0"`
	CategoryID      string `gorm:"column:category_id;type:text;index"`
	StakeholderArea string `gorm:"column:stakeholder_area;type:text"`
	SourceDocument  string `gorm:"column:source_document;type:text"`
	Deleted         bool   `gorm:"column:deleted;not null;default:0"`
	CreatedAt       string `gorm:"column:created_at;type:text;not null"`
}

func (Requirement) TableName() string {
	return "requirements"
}

type RequirementCriterion struct {
	RequirementID string `gorm:"column:requirement_id;type:text;primaryKey"`
	CriterionID   string `gorm:"column:criterion_id;type:text;primaryKey"`
	// Position keeps the link order stable; the consensus "first" policy
	// depends on it.
	Position int `gorm:"column:position;not null;default:0"`
}

func (RequirementCriterion) TableName() string {
	return "requirement_criteria"
}
