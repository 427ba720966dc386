package models

type User struct {
	Username     string `json:"username" db:"username"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	Phone        string `json:"phone" db:"phone"`
	PasswordHash string `json:"-" db:"password_hash"` // don’t expose hash
}
