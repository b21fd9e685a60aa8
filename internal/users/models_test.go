package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole("TOURIST"))
	assert.True(t, IsValidRole("GUIDE"))
	assert.True(t, IsValidRole("ADMIN"))

	assert.False(t, IsValidRole("tourist"))
	assert.False(t, IsValidRole("SUPERADMIN"))
	assert.False(t, IsValidRole(""))
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, "/admin/dashboard", RoleAdmin.DashboardPath())
	assert.Equal(t, "/guide/dashboard", RoleGuide.DashboardPath())
	assert.Equal(t, "/tourist/dashboard", RoleTourist.DashboardPath())

	// Unknown roles fall back to the tourist landing page.
	assert.Equal(t, "/tourist/dashboard", Role("MYSTERY").DashboardPath())
}

func TestStatusCanAuthenticate(t *testing.T) {
	assert.True(t, StatusActive.CanAuthenticate())
	assert.True(t, StatusInactive.CanAuthenticate())

	assert.False(t, StatusBlocked.CanAuthenticate())
	assert.False(t, StatusDeleted.CanAuthenticate())
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{"ACTIVE", "INACTIVE", "BLOCKED", "DELETED"} {
		assert.True(t, IsValidStatus(s), s)
	}
	assert.False(t, IsValidStatus("SUSPENDED"))
	assert.False(t, IsValidStatus("active"))
}

func TestToResponseHidesPassword(t *testing.T) {
	u := &User{
		Name:       "Sofia",
		Email:      "sofia@example.com",
		Password:   "$2a$10$hash",
		Role:       RoleGuide,
		Status:     StatusActive,
		IsVerified: true,
		GuideCity:  "Barcelona",
		GuideBio:   "Mountain guide",
	}

	resp := u.ToResponse()
	assert.Equal(t, "Sofia", resp.Name)
	assert.Equal(t, "GUIDE", resp.Role)
	assert.Equal(t, "ACTIVE", resp.Status)
	assert.True(t, resp.IsVerified)
	assert.Equal(t, "Barcelona", resp.GuideCity)
}
