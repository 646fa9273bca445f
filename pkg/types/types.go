package types

// TenantId identifies a school. Generated as a short code prefixed with "T".
type TenantId string

// UserId identifies a staff account within a tenant.
type UserId string

func (t TenantId) String() string { return string(t) }
func (t TenantId) IsNil() bool    { return t == "" }

func (u UserId) String() string { return string(u) }

// Role is the capability class of a staff account.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleTeacher    Role = "teacher"
	RoleStaff      Role = "staff"
)

const (
	SchoolKind     = "School"
	StudentKind    = "Student"
	TeacherKind    = "Teacher"
	ClassRoomKind  = "ClassRoom"
	SubjectKind    = "Subject"
	ScheduleKind   = "Schedule"
	GradeKind      = "Grade"
	AttendanceKind = "Attendance"
	LetterKind     = "Letter"
	ExportJobKind  = "ExportJob"
	InvalidKind    = "InvalidKind"
)

const (
	ResourceNameSchools    = "schools"
	ResourceNameStudents   = "students"
	ResourceNameTeachers   = "teachers"
	ResourceNameClassRooms = "classrooms"
	ResourceNameSubjects   = "subjects"
	ResourceNameSchedules  = "schedules"
	ResourceNameGrades     = "grades"
	ResourceNameAttendance = "attendance"
	ResourceNameLetters    = "letters"
	ResourceNameExportJobs = "exports"
)

// KindForResource maps a REST resource segment to its entity kind.
func KindForResource(resource string) string {
	switch resource {
	case ResourceNameSchools:
		return SchoolKind
	case ResourceNameStudents:
		return StudentKind
	case ResourceNameTeachers:
		return TeacherKind
	case ResourceNameClassRooms:
		return ClassRoomKind
	case ResourceNameSubjects:
		return SubjectKind
	case ResourceNameSchedules:
		return ScheduleKind
	case ResourceNameGrades:
		return GradeKind
	case ResourceNameAttendance:
		return AttendanceKind
	case ResourceNameLetters:
		return LetterKind
	case ResourceNameExportJobs:
		return ExportJobKind
	}
	return InvalidKind
}

// ExportJobStatus is the lifecycle state of an async export job.
type ExportJobStatus string

const (
	ExportJobPending   ExportJobStatus = "pending"
	ExportJobRunning   ExportJobStatus = "running"
	ExportJobCompleted ExportJobStatus = "completed"
	ExportJobFailed    ExportJobStatus = "failed"
)

// AttendanceStatus is the recorded presence state for a student on a date.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceSick    AttendanceStatus = "sick"
	AttendanceLeave   AttendanceStatus = "leave"
	AttendanceAbsent  AttendanceStatus = "absent"
)
