package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID       uint64
	Name     string
	Email    string
	Password string
	Role     Role
}

// Actor is the authenticated identity plus authorization level handed in by
// the transport layer. The core never re-derives roles.
type Actor struct {
	UserID uint64
	Role   Role
}

func (a Actor) Elevated() bool {
	return a.Role == RoleAdmin
}
