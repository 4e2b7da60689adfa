package entities

type Role string

const (
	RoleClient Role = "client"
	RoleDriver Role = "driver"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return r == RoleClient || r == RoleDriver
}

// Actor - аутентифицированный участник запроса.
type Actor struct {
	ID   string
	Name string
	Role Role
}

func (a Actor) IsDriver() bool {
	return a.Role == RoleDriver
}

func (a Actor) IsClient() bool {
	return a.Role == RoleClient
}
