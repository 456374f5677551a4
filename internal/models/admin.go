package models

// Admin is a backoffice operator. Credentials are first-party; sessions live
// in Redis.
type Admin struct {
	ID           uint   `json:"id_admin" gorm:"column:id_admin;primaryKey"`
	Name         string `json:"nome" gorm:"column:nome;not null;size:100"`
	Email        string `json:"email" gorm:"column:email;uniqueIndex;not null;size:255"`
	PasswordHash string `json:"-" gorm:"column:senha;not null;size:255"`
}

func (Admin) TableName() string {
	return "admins"
}
