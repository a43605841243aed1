package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, role := range AllRoles {
		got, err := ParseRole(string(role))
		require.NoError(t, err)
		assert.Equal(t, role, got)
	}
	_, err := ParseRole("superuser")
	assert.EqualError(t, err, `unknown role "superuser"`)
}

func TestCan(t *testing.T) {
	tests := []struct {
		role Role
		cap  Capability
		want bool
	}{
		{RoleAdmin, CapManageUsers, true},
		{RoleAdmin, CapRunPromotion, true},
		{RoleAdmin, CapSubmitAssignments, false},
		{RoleTeacher, CapManageSessions, true},
		{RoleTeacher, CapGradeSubmissions, true},
		{RoleTeacher, CapManageUsers, false},
		{RoleTeacher, CapRunPromotion, false},
		{RoleStudent, CapSubmitAssignments, true},
		{RoleStudent, CapGradeSubmissions, false},
		{RoleParent, CapViewCourses, true},
		{RoleParent, CapManageAttachments, false},
		{Role("ghost"), CapViewCourses, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+tt.cap.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.role, tt.cap))
		})
	}
}

func TestNavigationFor(t *testing.T) {
	keys := func(items []NavItem) []string {
		out := make([]string, len(items))
		for i, item := range items {
			out[i] = item.Key
		}
		return out
	}

	assert.Equal(t, []string{"courses", "sessions"}, keys(NavigationFor(RoleTeacher)))
	assert.Equal(t, []string{"courses"}, keys(NavigationFor(RoleStudent)))
	assert.Len(t, NavigationFor(RoleAdmin), len(navigation))
	assert.Empty(t, NavigationFor(Role("ghost")))
}

func TestHasAnyRole(t *testing.T) {
	assert.False(t, HasAnyRole(nil, RoleAdmin))
	u := &User{Role: RoleTeacher}
	assert.True(t, HasAnyRole(u, RoleAdmin, RoleTeacher))
	assert.False(t, HasAnyRole(u, RoleStudent))
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Budi Santoso", User{Name: " Budi Santoso "}.DisplayName())
	assert.Equal(t, "Budi Santoso", User{FirstName: "Budi", LastName: "Santoso"}.DisplayName())
	assert.Equal(t, "budi@school.id", User{Email: "budi@school.id"}.DisplayName())
}

func TestCapability_String(t *testing.T) {
	assert.Equal(t, "run_promotion", CapRunPromotion.String())
	assert.Equal(t, "capability(99)", Capability(99).String())
}

func TestCurrentYear_FirstWins(t *testing.T) {
	years := []AcademicYear{{ID: 1}, {ID: 2, IsCurrent: true}, {ID: 3, IsCurrent: true}}
	assert.Equal(t, 2, CurrentYear(years).ID)
	assert.Nil(t, CurrentYear(years[:1]))
	assert.Nil(t, FindYear(years, 9))
}

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalJSON([]byte(`"2025-07-01T00:00:00Z"`)))
	assert.Equal(t, "2025-07-01", d.String())
	require.NoError(t, d.UnmarshalJSON([]byte(`null`)))
	assert.True(t, d.IsZero())
	raw, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
	assert.Error(t, d.UnmarshalJSON([]byte(`"07/01/2025"`)))
}
