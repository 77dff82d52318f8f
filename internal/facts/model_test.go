package facts

import "testing"

func TestPrimaryRole(t *testing.T) {
	f := FileFact{Roles: []Role{RoleTest, RoleCLI}}
	if f.PrimaryRole() != RoleTest {
		t.Errorf("PrimaryRole = %s, want test", f.PrimaryRole())
	}

	empty := FileFact{}
	if empty.PrimaryRole() != RoleUnknown {
		t.Errorf("PrimaryRole of empty fact = %s, want unknown", empty.PrimaryRole())
	}
}

func TestHasRole(t *testing.T) {
	f := FileFact{Roles: []Role{RoleTest, RoleCLI}}
	if !f.HasRole(RoleCLI) {
		t.Error("HasRole(cli) = false")
	}
	if f.HasRole(RoleService) {
		t.Error("HasRole(service) = true")
	}
}
