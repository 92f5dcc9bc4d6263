package domain

// DefaultStaff returns the roster used before any directory state has been persisted.
func DefaultStaff() []StaffMember {
	return []StaffMember{
		{ID: "principal_1", Name: "أ. هند العتيبي", Subject: "مديرة المدرسة", Email: "hind.a@school.edu.sa", Color: "bg-zinc-800", Role: StaffRolePrincipal, Status: StaffStatusActive},
		{ID: "1", Name: "أ. نورة العتيبي", Subject: "معلمة - اللغة العربية", Email: "noura.a@school.edu.sa", Color: "bg-emerald-600", Role: StaffRoleTeacher, Status: StaffStatusActive},
		{ID: "2", Name: "أ. سارة القحطاني", Subject: "معلمة - الرياضيات", Email: "sarah.q@school.edu.sa", Color: "bg-indigo-600", Role: StaffRoleTeacher, Status: StaffStatusActive},
		{ID: "3", Name: "أ. مريم الدوسري", Subject: "مشرفة تعليمية", Email: "maryam.d@school.edu.sa", Color: "bg-rose-600", Role: StaffRoleSupervisor, Status: StaffStatusActive},
		{ID: "4", Name: "أ. ليلى الشمري", Subject: "إدارية - شؤون الطالبات", Email: "laila.s@school.edu.sa", Color: "bg-amber-600", Role: StaffRoleAdminStaff, Status: StaffStatusActive},
		{ID: "5", Name: "أ. سميرة الصحفي", Subject: "معلمة دراسات إسلامية", Email: "samira.s@school.edu.sa", Color: "bg-teal-600", Role: StaffRoleTeacher, Status: StaffStatusActive},
	}
}
