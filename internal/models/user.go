package models

// User is an admin account. Admins add companies and read the selection log.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
