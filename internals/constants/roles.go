package constants

import "fmt"

// Role yang dikenal di bimbel (coaching center)
const (
	RoleStudent       = "student"
	RoleTeacher       = "teacher"
	RoleBranchManager = "branch_manager"
	RoleCenterManager = "center_manager"
	RoleOwner         = "owner"
)

// Template pesan error role
const (
	ErrOnlyTeachersCanAccess  = "❌ Hanya teacher, manager, atau owner yang boleh mengakses fitur %s."
	ErrOnlyManagersCanAccess  = "❌ Hanya manager atau owner yang boleh mengakses fitur %s."
	ErrOnlyStudentsCanAccess  = "❌ Fitur %s hanya untuk student."
	ErrOnlyOwnersCanAccess    = "❌ Hanya owner yang boleh mengakses fitur %s."
)

// Fungsi helper untuk menghasilkan pesan error dinamis
func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorManager(feature string) string {
	return fmt.Sprintf(ErrOnlyManagersCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

func RoleErrorOwner(feature string) string {
	return fmt.Sprintf(ErrOnlyOwnersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleTeacher,
		RoleBranchManager,
		RoleCenterManager,
		RoleOwner,
	}

	TeacherAndAbove = []string{
		RoleTeacher,
		RoleBranchManager,
		RoleCenterManager,
		RoleOwner,
	}

	ManagerAndAbove = []string{
		RoleBranchManager,
		RoleCenterManager,
		RoleOwner,
	}

	StudentOnly = []string{
		RoleStudent,
	}

	OwnerOnly = []string{
		RoleOwner,
	}
)
