package models

type StudentStatus string

const (
	StudentActive      StudentStatus = "active"
	StudentGraduated   StudentStatus = "graduated"
	StudentTransferred StudentStatus = "transferred"
	StudentWithdrawn   StudentStatus = "withdrawn"
)

var StudentStatuses = []StudentStatus{StudentActive, StudentGraduated, StudentTransferred, StudentWithdrawn}

type Guardian struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address,omitempty"`
	Occupation   string `json:"occupation,omitempty"`
}

type Student struct {
	ID                ID            `json:"id"`
	FirstName         string        `json:"firstName"`
	MiddleName        string        `json:"middleName,omitempty"`
	LastName          string        `json:"lastName"`
	DateOfBirth       string        `json:"dateOfBirth,omitempty"`
	Age               Age           `json:"age"`
	Class             Text          `json:"class,omitempty"`
	DateJoined        string        `json:"dateJoined,omitempty"`
	Status            StudentStatus `json:"studentStatus"`
	ExitDate          string        `json:"exitDate,omitempty"`
	PrimaryGuardian   *Guardian     `json:"primaryGuardian,omitempty"`
	SecondaryGuardian *Guardian     `json:"secondaryGuardian,omitempty"`
}

func (s Student) FullName() string { return joinName(s.FirstName, s.MiddleName, s.LastName) }

// HasExitDate — при статусе, отличном от active, дата выбытия может отсутствовать;
// тогда она считается неизвестной.
func (s Student) HasExitDate() bool { return s.ExitDate != "" }
