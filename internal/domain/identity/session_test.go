package identity

import "testing"

func TestSession_CanAccess(t *testing.T) {
	owner := Session{UserID: "u1", Role: RoleCustomer}
	other := Session{UserID: "u2", Role: RoleCustomer}
	staff := Session{UserID: "s1", Role: RoleStaff}

	if !owner.CanAccess("u1") {
		t.Error("owner must access own resource")
	}
	if other.CanAccess("u1") {
		t.Error("other customer must not access")
	}
	if !staff.CanAccess("u1") {
		t.Error("staff must access any resource")
	}
	if (Session{}).CanAccess("") {
		t.Error("anonymous session must not match empty owner")
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleCustomer, RoleStaff} {
		if !r.Valid() {
			t.Errorf("%q should be valid", r)
		}
	}
	if Role("admin").Valid() {
		t.Error("admin should be invalid")
	}
}
