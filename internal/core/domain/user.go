package domain

// UserRole is the access level of a profile.
type UserRole string

const (
	RoleAdmin   UserRole = "Admin"
	RoleManager UserRole = "Manager"
	RoleCashier UserRole = "Cashier"
)

// UserProfile is a named operator of the system. Passwords are stored as
// bcrypt hashes, never plaintext.
type UserProfile struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"passwordHash,omitempty"`
	IsActive     bool     `json:"isActive"`
	Avatar       string   `json:"avatar,omitempty"`
}
