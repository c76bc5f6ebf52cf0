package model

type Vendor struct {
	VendorID  string `gorm:"column:vendor_id;type:text;primaryKey"`
	ProjectID string `gorm:"column:project_id;type:text;not null;index"`
	Name      string `gorm:"column:name;type:text;not null"`
	Status    string `gorm:"column:status;type:text;not null;index"`
	CreatedAt string `gorm:"column:created_at;type:text;not null"`
}

func (Vendor) TableName() string {
	return "vendors"
}
