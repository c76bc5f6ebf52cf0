package model

type Insight struct {
	InsightID      uint64  `gorm:"column:insight_id;primaryKey;autoIncrement"`
	ProjectID      string  `gorm:"column:project_id;type:text;not null;index"`
	BatchID        string  `gorm:"column:batch_id;type:text;not null;index"`
	Type           string  `gorm:"column:type;type:text;not null"`
	Title          string  `gorm:"column:title;type:text;not null"`
	Description    string  `gorm:"column:description;type:text;not null"`
	Priority       string  `gorm:"column:priority;type:text;not null"`
	VendorID       string  `gorm:"column:vendor_id;type:text"`
	CategoryID     string  `gorm:"column:category_id;type:text"`
	RequirementID  string  `gorm:"column:requirement_id;type:text"`
	SupportingJSON string  `gorm:"column:supporting_json;type:text;not null"`
	GeneratedAt    string  `gorm:"column:generated_at;type:text;not null"`
	Dismissed      bool    `gorm:"column:dismissed;not null;default:0"`
	DismissedAt    *string `gorm:"column:dismissed_at;type:text"`
}

func (Insight) TableName() string {
	return "insights"
}
