package models

type User struct {
	ID        int64  `db:"id" json:"id"`
	Username  string `db:"username" json:"username" validate:"required,min=3,max=50"`
	Email     string `db:"email" json:"email" validate:"required,email"`
	Password  string `db:"password" json:"-"`
	Telephone string `db:"telephone" json:"telephone,omitempty"`
	Status    string `db:"status" json:"status"`
}

// AuthUser is the token-resolved identity attached to a request. It carries
// no credentials.
type AuthUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Status   string `json:"status"`
}

const (
	UserStatusActive   = "ACTIVE"
	UserStatusInactive = "INACTIVE"
)
