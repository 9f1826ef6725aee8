package identity

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
)

func (r Role) Valid() bool { return r == RoleCustomer || r == RoleStaff }

// Session is the authenticated caller of one request.
type Session struct {
	UserID string
	Role   Role
}

func (s Session) IsStaff() bool { return s.Role == RoleStaff }

// CanAccess reports whether the caller may read a resource owned by ownerID.
func (s Session) CanAccess(ownerID string) bool {
	return s.IsStaff() || (s.UserID != "" && s.UserID == ownerID)
}
