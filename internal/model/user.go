package model

// User is a read-only collaborator record; account management lives outside
// this service.
type User struct {
	ID    int64  `gorm:"primaryKey"`
	Email string `gorm:"type:varchar(255)"`
	Name  string `gorm:"type:varchar(255)"`
}
