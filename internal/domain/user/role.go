package user

import "strings"

type Role string

const (
	RoleClient Role = "client"
	RoleBarber Role = "barber"
	RoleAdmin  Role = "admin"
)

var roleAliases = map[string]Role{
	"client":        RoleClient,
	"customer":      RoleClient,
	"barber":        RoleBarber,
	"admin":         RoleAdmin,
	"administrator": RoleAdmin,
}

// ParseRole normalizes external spellings to the canonical role.
func ParseRole(raw string) (Role, bool) {
	r, ok := roleAliases[strings.ToLower(strings.TrimSpace(raw))]
	return r, ok
}

// Identity is the verified caller as issued by the auth layer.
type Identity struct {
	ID    uint
	Email string
	Role  Role
}

func (i Identity) Is(roles ...Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}
