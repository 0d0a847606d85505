package dashboard

import (
	"github.com/Spok95/school-analytics/internal/metrics"
)

// Publish выставляет gauge-метрики по снимку.
func Publish(d Dashboard) {
	for st, n := range d.Students.ByStatus {
		metrics.Population.WithLabelValues("student", string(st)).Set(float64(n))
	}
	for st, n := range d.Teachers.ByStatus {
		metrics.Population.WithLabelValues("teacher", string(st)).Set(float64(n))
	}
	for st, n := range d.LessonPlans.ByStatus {
		metrics.Population.WithLabelValues("lesson_plan", string(st)).Set(float64(n))
	}
	metrics.Rates.WithLabelValues("student_retention").Set(float64(d.Students.Retention))
	metrics.Rates.WithLabelValues("teacher_turnover").Set(float64(d.Teachers.Turnover))
	metrics.Rates.WithLabelValues("student_attendance_today").Set(float64(d.Attendance.StudentsToday.Rate))
	metrics.Rates.WithLabelValues("teacher_attendance_today").Set(float64(d.Attendance.TeachersToday.Rate))
	metrics.StudentTeacherRatio.Set(float64(d.StudentTeacherRatio))
}
