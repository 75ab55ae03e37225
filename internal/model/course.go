package model

// Course is a read-only snapshot; the catalog owns it. Price is in minor
// units and is authoritative for the mismatch audit on initiation.
type Course struct {
	ID       int64  `gorm:"primaryKey"`
	Title    string `gorm:"type:varchar(255)"`
	Price    int64  `gorm:"not null"`
	Currency string `gorm:"type:varchar(8)"`
}
