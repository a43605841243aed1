package entity

import "fmt"

type Role string

const (
	RoleAdmin         Role = "admin"
	RoleTeacher       Role = "teacher"
	RoleStudent       Role = "student"
	RoleParent        Role = "parent"
	RoleStudentParent Role = "student_parent"
)

var AllRoles = []Role{RoleAdmin, RoleTeacher, RoleStudent, RoleParent, RoleStudentParent}

func ParseRole(s string) (Role, error) {
	for _, role := range AllRoles {
		if string(role) == s {
			return role, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type Capability int

const (
	CapManageUsers Capability = iota + 1
	CapManageAcademics
	CapManageSessions
	CapManageAttachments
	CapGradeSubmissions
	CapSubmitAssignments
	CapManageNotifications
	CapManageBanners
	CapManageAcademicYears
	CapRunPromotion
	CapViewAuditLogs
	CapViewCourses
)

var capabilityNames = map[Capability]string{
	CapManageUsers:         "manage_users",
	CapManageAcademics:     "manage_academics",
	CapManageSessions:      "manage_sessions",
	CapManageAttachments:   "manage_attachments",
	CapGradeSubmissions:    "grade_submissions",
	CapSubmitAssignments:   "submit_assignments",
	CapManageNotifications: "manage_notifications",
	CapManageBanners:       "manage_banners",
	CapManageAcademicYears: "manage_academic_years",
	CapRunPromotion:        "run_promotion",
	CapViewAuditLogs:       "view_audit_logs",
	CapViewCourses:         "view_courses",
}

func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return fmt.Sprintf("capability(%d)", int(c))
}

// permissions is the single permission table; navigation, handlers and the CLI
// all read from it.
var permissions = map[Role][]Capability{
	RoleAdmin: {
		CapManageUsers, CapManageAcademics, CapManageSessions, CapManageAttachments,
		CapGradeSubmissions, CapManageNotifications, CapManageBanners,
		CapManageAcademicYears, CapRunPromotion, CapViewAuditLogs, CapViewCourses,
	},
	RoleTeacher:       {CapManageSessions, CapManageAttachments, CapGradeSubmissions, CapViewCourses},
	RoleStudent:       {CapSubmitAssignments, CapViewCourses},
	RoleParent:        {CapViewCourses},
	RoleStudentParent: {CapViewCourses},
}

func Can(role Role, capability Capability) bool {
	for _, c := range permissions[role] {
		if c == capability {
			return true
		}
	}
	return false
}

type NavItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

var navigation = []struct {
	item NavItem
	cap  Capability
}{
	{NavItem{"courses", "Courses", "/courses"}, CapViewCourses},
	{NavItem{"students", "Students", "/students"}, CapManageUsers},
	{NavItem{"teachers", "Teachers", "/teachers"}, CapManageUsers},
	{NavItem{"classes", "Classes", "/classes"}, CapManageAcademics},
	{NavItem{"subjects", "Subjects", "/subjects"}, CapManageAcademics},
	{NavItem{"sessions", "Sessions", "/sessions"}, CapManageSessions},
	{NavItem{"notifications", "Notifications", "/notifications"}, CapManageNotifications},
	{NavItem{"banners", "Banners", "/banners"}, CapManageBanners},
	{NavItem{"academic-years", "Academic Years", "/academic-years"}, CapManageAcademicYears},
	{NavItem{"promotion", "Promotion", "/promotion"}, CapRunPromotion},
	{NavItem{"logs", "Audit Logs", "/logs"}, CapViewAuditLogs},
}

// NavigationFor lists the navigation items visible to role, in menu order.
func NavigationFor(role Role) []NavItem {
	items := make([]NavItem, 0, len(navigation))
	for _, n := range navigation {
		if Can(role, n.cap) {
			items = append(items, n.item)
		}
	}
	return items
}
