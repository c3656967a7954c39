package domain

// User is an authenticated operator of the bookkeeping system.
type User struct {
	UserID       string `json:"userId"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	AuditFields
}
