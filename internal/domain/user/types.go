package user

type Role string

const (
	RoleViewer   Role = "viewer"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

// rank orders roles for "at least" checks. Only admins may clear stuck swap
// proposals.
var rank = map[Role]int{
	RoleViewer:   1,
	RoleOperator: 2,
	RoleAdmin:    3,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := rank[r]
	return ok
}

// AtLeast is false whenever either role is unknown.
func (r Role) AtLeast(other Role) bool {
	have, ok := rank[r]
	if !ok {
		return false
	}
	need, ok := rank[other]
	return ok && have >= need
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
