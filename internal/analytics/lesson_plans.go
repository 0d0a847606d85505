package analytics

import (
	"strings"

	"github.com/Spok95/school-analytics/internal/models"
	"github.com/Spok95/school-analytics/internal/workflow"
)

func PlanStatusCounts(plans []models.LessonPlan) map[models.PlanStatus]int {
	got := make([]models.PlanStatus, 0, len(plans))
	for _, p := range plans {
		got = append(got, p.Status)
	}
	return CountStatuses(models.PlanStatuses, got)
}

// PlansByTeacher — количество планов на автора (по отображаемому имени,
// либо по teacherId, если имени нет).
func PlansByTeacher(plans []models.LessonPlan) Distribution {
	d := Distribution{}
	for _, p := range plans {
		k := strings.TrimSpace(p.Teacher)
		if k == "" {
			k = strings.TrimSpace(p.TeacherID.String())
		}
		if k != "" {
			d[k]++
		}
	}
	return d
}

// PlanSubjectDistribution — планы по предметам.
func PlanSubjectDistribution(plans []models.LessonPlan) Distribution {
	d := Distribution{}
	for _, p := range plans {
		if k := strings.TrimSpace(p.Subject); k != "" {
			d[k]++
		}
	}
	return d
}

// VisiblePlans — планы, которые видит actor.
func VisiblePlans(plans []models.LessonPlan, actor models.Actor) []models.LessonPlan {
	out := make([]models.LessonPlan, 0, len(plans))
	for _, p := range plans {
		if workflow.CanView(p, actor) {
			out = append(out, p)
		}
	}
	return out
}

// OwnPlanCounts — статусы планов конкретного учителя (для его дашборда).
func OwnPlanCounts(plans []models.LessonPlan, actor models.Actor) map[models.PlanStatus]int {
	own := make([]models.LessonPlan, 0)
	for _, p := range plans {
		if workflow.MatchesOwner(p, actor) {
			own = append(own, p)
		}
	}
	return PlanStatusCounts(own)
}
