package auth

// User is the domain entity.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
}

const (
	RoleAdmin = "ADMIN"
	RoleOwner = "OWNER"
)
