// Package workflow описывает жизненный цикл плана урока:
// draft -> pending -> approved | rejected, rejected -> draft (правка) -> pending.
//
// Предикаты Can* — единственная проверка прав; переходы ниже применяют их сами
// и возвращают ErrNotPermitted вместо изменения плана.
package workflow

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Spok95/school-analytics/internal/models"
)

var (
	ErrNotPermitted   = errors.New("workflow: action not permitted")
	ErrReasonRequired = errors.New("workflow: rejection reason required")
)

// DateLayout — формат штампов аудита.
const DateLayout = time.RFC3339

// MatchesOwner — план принадлежит actor по id или по отображаемому имени.
func MatchesOwner(p models.LessonPlan, actor models.Actor) bool {
	if !p.TeacherID.IsZero() && actor.ID != "" && p.TeacherID.String() == actor.ID {
		return true
	}
	name := strings.TrimSpace(actor.Name)
	return name != "" && strings.TrimSpace(p.Teacher) == name
}

// CanEdit: админ — любой план; учитель — свой, в draft или rejected.
func CanEdit(p models.LessonPlan, actor models.Actor) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.IsTeacher() && MatchesOwner(p, actor) &&
		(p.Status == models.PlanDraft || p.Status == models.PlanRejected)
}

// CanDelete: админ — любой; учитель — только свой черновик.
func CanDelete(p models.LessonPlan, actor models.Actor) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.IsTeacher() && MatchesOwner(p, actor) && p.Status == models.PlanDraft
}

// CanSubmit: только автор и только черновик.
func CanSubmit(p models.LessonPlan, actor models.Actor) bool {
	return actor.IsTeacher() && MatchesOwner(p, actor) && p.Status == models.PlanDraft
}

// CanReview: одобрять/отклонять может только админ и только pending.
func CanReview(p models.LessonPlan, actor models.Actor) bool {
	return actor.IsAdmin() && p.Status == models.PlanPending
}

// CanView: учитель видит свои планы и все одобренные; админ — всё,
// кроме чужих черновиков.
func CanView(p models.LessonPlan, actor models.Actor) bool {
	switch {
	case actor.IsAdmin():
		return p.Status != models.PlanDraft || MatchesOwner(p, actor)
	case actor.IsTeacher():
		return MatchesOwner(p, actor) || p.Status == models.PlanApproved
	}
	return p.Status == models.PlanApproved
}

// Draft — редактируемые поля плана.
type Draft struct {
	Title      string
	Subject    string
	Class      string
	Duration   string
	Objectives string
	Materials  string
	Activities string
	Assessment string
}

func (d Draft) apply(p *models.LessonPlan) {
	p.Title = strings.TrimSpace(d.Title)
	p.Subject = strings.TrimSpace(d.Subject)
	p.Class = models.Text(strings.TrimSpace(d.Class))
	p.Duration = models.Text(strings.TrimSpace(d.Duration))
	p.Objectives = d.Objectives
	p.Materials = d.Materials
	p.Activities = d.Activities
	p.Assessment = d.Assessment
}

// NewPlan создаёт план. План админа сразу одобрен им самим, план учителя — черновик.
func NewPlan(d Draft, actor models.Actor, now time.Time) (models.LessonPlan, error) {
	if !actor.IsAdmin() && !actor.IsTeacher() {
		return models.LessonPlan{}, ErrNotPermitted
	}
	ts := now.Format(DateLayout)
	p := models.LessonPlan{
		ID:           models.NewID(uuid.NewString()),
		TeacherID:    models.NewID(actor.ID),
		Teacher:      actor.Name,
		DateCreated:  ts,
		LastModified: ts,
		Status:       models.PlanDraft,
	}
	d.apply(&p)
	if actor.IsAdmin() {
		p.Status = models.PlanApproved
		p.ApprovedBy = actor.Name
		p.ApprovedDate = ts
	}
	return p, nil
}

// Edit применяет правки. Правка отклонённого плана учителем возвращает его в draft.
func Edit(p models.LessonPlan, d Draft, actor models.Actor, now time.Time) (models.LessonPlan, error) {
	if !CanEdit(p, actor) {
		return p, ErrNotPermitted
	}
	d.apply(&p)
	p.LastModified = now.Format(DateLayout)
	if !actor.IsAdmin() && p.Status == models.PlanRejected {
		p.Status = models.PlanDraft
		p.RejectedDate = ""
		p.RejectionReason = ""
	}
	return p, nil
}

// Submit отправляет черновик на утверждение.
func Submit(p models.LessonPlan, actor models.Actor, now time.Time) (models.LessonPlan, error) {
	if !CanSubmit(p, actor) {
		return p, ErrNotPermitted
	}
	ts := now.Format(DateLayout)
	p.Status = models.PlanPending
	p.SubmittedDate = ts
	p.LastModified = ts
	return p, nil
}

func Approve(p models.LessonPlan, actor models.Actor, now time.Time) (models.LessonPlan, error) {
	if !CanReview(p, actor) {
		return p, ErrNotPermitted
	}
	ts := now.Format(DateLayout)
	p.Status = models.PlanApproved
	p.ApprovedDate = ts
	p.ApprovedBy = actor.Name
	p.LastModified = ts
	return p, nil
}

func Reject(p models.LessonPlan, actor models.Actor, reason string, now time.Time) (models.LessonPlan, error) {
	if !CanReview(p, actor) {
		return p, ErrNotPermitted
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return p, ErrReasonRequired
	}
	ts := now.Format(DateLayout)
	p.Status = models.PlanRejected
	p.RejectedDate = ts
	p.RejectionReason = reason
	p.LastModified = ts
	return p, nil
}
