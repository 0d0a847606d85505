package loader

import (
	"strings"

	"github.com/Spok95/school-analytics/internal/models"
)

// NormalizeStudents проставляет studentStatus=active там, где статуса нет.
func NormalizeStudents(in []models.Student) []models.Student {
	out := make([]models.Student, 0, len(in))
	for _, s := range in {
		s.Status = models.StudentStatus(normStatus(string(s.Status)))
		if s.Status == "" {
			s.Status = models.StudentActive
		}
		out = append(out, s)
	}
	return out
}

func NormalizeTeachers(in []models.Teacher) []models.Teacher {
	out := make([]models.Teacher, 0, len(in))
	for _, t := range in {
		t.EmploymentStatus = models.EmploymentStatus(normStatus(string(t.EmploymentStatus)))
		if t.EmploymentStatus == "" {
			t.EmploymentStatus = models.TeacherActive
		}
		if t.SubjectsTaught == nil {
			t.SubjectsTaught = []string{}
		}
		out = append(out, t)
	}
	return out
}

// NormalizePlanStatus: пусто -> draft, published -> approved, submitted -> pending.
func NormalizePlanStatus(s models.PlanStatus) models.PlanStatus {
	n := models.MigrateStatus(models.PlanStatus(normStatus(string(s))))
	if n == "" {
		return models.PlanDraft
	}
	return n
}

// NormalizeLessonPlans возвращает нормализованную копию и признак того,
// что хотя бы один сохранённый статус был переименован.
func NormalizeLessonPlans(in []models.LessonPlan) ([]models.LessonPlan, bool) {
	out := make([]models.LessonPlan, 0, len(in))
	changed := false
	for _, p := range in {
		n := NormalizePlanStatus(p.Status)
		if p.Status != "" && n != p.Status {
			changed = true
		}
		p.Status = n
		out = append(out, p)
	}
	return out, changed
}

func NormalizeAttendanceRecords(in models.AttendanceRecords) models.AttendanceRecords {
	out := make(models.AttendanceRecords, len(in))
	for role, daily := range in {
		out[role] = NormalizeDaily(daily)
	}
	return out
}

// NormalizeDaily приводит статусы к нижнему регистру и выбрасывает пустые отметки:
// отсутствие ключа и есть «не отмечен».
func NormalizeDaily(in models.DailyAttendance) models.DailyAttendance {
	out := make(models.DailyAttendance, len(in))
	for date, marks := range in {
		day := make(models.DayMarks, len(marks))
		for id, st := range marks {
			st = models.AttendanceStatus(normStatus(string(st)))
			if st == models.Unmarked {
				continue
			}
			day[id] = st
		}
		out[strings.TrimSpace(date)] = day
	}
	return out
}

func normStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
