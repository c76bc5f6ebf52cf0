package model

type Category struct {
	CategoryID string  `gorm:"column:category_id;type:text;primaryKey"`
	ProjectID  string  `gorm:"column:project_id;type:text;not null;index"`
	Name       string  `gorm:"column:name;type:text;not null"`
	Weight     float64 `gorm:"column:weight;not null;default:0"`
	SortOrder  int     `gorm:"column:sort_order;not null;default:0"`
	Deleted    bool    `gorm:"column:deleted;not null;default:0"`
}

func (Category) TableName() string {
	return "categories"
}

type Criterion struct {
	CriterionID string  `gorm:"column:criterion_id;type:text;primaryKey"`
	ProjectID   string  `gorm:"column:project_id;type:text;not null;index"`
	CategoryID  string  `gorm:"column:category_id;type:text;not null;index"`
	Name        string  `gorm:"column:name;type:text;not null"`
	Weight      float64 `gorm:"column:weight;not null;default:1"`
}

func (Criterion) TableName() string {
	return "criteria"
}
