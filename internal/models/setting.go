package models

// Setting key/value site configuration row
type Setting struct {
	Key       string `gorm:"primarykey" json:"key"`
	ValueJSON JSON   `gorm:"type:json" json:"value"`
}

// TableName table name
func (Setting) TableName() string {
	return "settings"
}
