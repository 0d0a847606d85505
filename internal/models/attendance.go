package models

type AttendanceStatus string

const (
	Present  AttendanceStatus = "present"
	Absent   AttendanceStatus = "absent"
	Late     AttendanceStatus = "late"
	Unmarked AttendanceStatus = ""
)

// Attended — опоздание тоже считается присутствием.
func (s AttendanceStatus) Attended() bool { return s == Present || s == Late }

// Marked — есть ли у записи известная отметка.
func (s AttendanceStatus) Marked() bool { return s == Present || s == Absent || s == Late }

// RoleKey — ключ роли в attendanceRecords.
type RoleKey string

const (
	RoleTeachers RoleKey = "teachers"
	RoleStudents RoleKey = "students"
)

// DayMarks: personId -> статус.
type DayMarks map[string]AttendanceStatus

// DailyAttendance: ISO-дата -> отметки за день.
type DailyAttendance map[string]DayMarks

// AttendanceRecords: роль -> дата -> personId -> статус.
type AttendanceRecords map[RoleKey]DailyAttendance

// Status возвращает отметку или Unmarked, если её нет.
func (r AttendanceRecords) Status(role RoleKey, date, personID string) AttendanceStatus {
	return r[role][date][personID]
}
