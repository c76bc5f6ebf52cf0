package model

type Project struct {
	ProjectID string `gorm:"column:project_id;type:text;primaryKey"`
	Name      string `gorm:"column:name;type:text;not null"`
	Status    string `gorm:"column:status;type:text;not null"`
	CreatedAt string `gorm:"column:created_at;type:text;not null"`
}

func (Project) TableName() string {
	return "projects"
}
