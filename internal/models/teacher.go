package models

import "strings"

type EmploymentStatus string

const (
	TeacherActive   EmploymentStatus = "active"
	TeacherRetired  EmploymentStatus = "retired"
	TeacherResigned EmploymentStatus = "resigned"
)

var EmploymentStatuses = []EmploymentStatus{TeacherActive, TeacherRetired, TeacherResigned}

type Teacher struct {
	ID               ID               `json:"id"`
	FirstName        string           `json:"firstName"`
	MiddleName       string           `json:"middleName,omitempty"`
	LastName         string           `json:"lastName"`
	Age              Age              `json:"age"`
	EmploymentStatus EmploymentStatus `json:"employmentStatus"`
	EndDate          string           `json:"endDate,omitempty"`
	AssignedClass    Text             `json:"assignedClass,omitempty"`
	SubjectsTaught   []string         `json:"subjectsTaught"`
}

func (t Teacher) FullName() string { return joinName(t.FirstName, t.MiddleName, t.LastName) }

func joinName(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
