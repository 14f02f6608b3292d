package entity

// Place is the location a reminder may point at. Used only to enrich notification bodies.
type Place struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	Name   string `gorm:"column:name;not null"`
	Street string `gorm:"column:street"`
	City   string `gorm:"column:city"`
}

// TableName specifies the table name for the Place entity.
func (Place) TableName() string {
	return "places"
}
