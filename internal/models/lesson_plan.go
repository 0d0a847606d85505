package models

type PlanStatus string

const (
	PlanDraft    PlanStatus = "draft"
	PlanPending  PlanStatus = "pending"
	PlanApproved PlanStatus = "approved"
	PlanRejected PlanStatus = "rejected"
)

var PlanStatuses = []PlanStatus{PlanDraft, PlanPending, PlanApproved, PlanRejected}

// устаревшие названия статусов из старых сохранений
const (
	legacyPublished PlanStatus = "published"
	legacySubmitted PlanStatus = "submitted"
)

// MigrateStatus переводит устаревший статус в актуальный. Идемпотентна.
func MigrateStatus(s PlanStatus) PlanStatus {
	switch s {
	case legacyPublished:
		return PlanApproved
	case legacySubmitted:
		return PlanPending
	}
	return s
}

type LessonPlan struct {
	ID              ID         `json:"id"`
	Title           string     `json:"title"`
	Subject         string     `json:"subject,omitempty"`
	Class           Text       `json:"class,omitempty"`
	Duration        Text       `json:"duration,omitempty"`
	Objectives      string     `json:"objectives,omitempty"`
	Materials       string     `json:"materials,omitempty"`
	Activities      string     `json:"activities,omitempty"`
	Assessment      string     `json:"assessment,omitempty"`
	Status          PlanStatus `json:"status"`
	TeacherID       ID         `json:"teacherId,omitzero"`
	Teacher         string     `json:"teacher,omitempty"`
	DateCreated     string     `json:"dateCreated,omitempty"`
	LastModified    string     `json:"lastModified,omitempty"`
	SubmittedDate   string     `json:"submittedDate,omitempty"`
	ApprovedDate    string     `json:"approvedDate,omitempty"`
	ApprovedBy      string     `json:"approvedBy,omitempty"`
	RejectedDate    string     `json:"rejectedDate,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
}
