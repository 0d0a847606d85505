// Package dashboard собирает снимок аналитики: Loader -> агрегаты -> окна и рейтинги.
package dashboard

import (
	"context"
	"time"

	"github.com/Spok95/school-analytics/internal/analytics"
	"github.com/Spok95/school-analytics/internal/loader"
	"github.com/Spok95/school-analytics/internal/models"
	"github.com/Spok95/school-analytics/internal/trend"
)

type Options struct {
	Now         time.Time
	Location    *time.Location
	TrendWindow int
	RankingSize int
}

func (o Options) withDefaults() Options {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.TrendWindow <= 0 {
		o.TrendWindow = 7
	}
	if o.RankingSize <= 0 {
		o.RankingSize = 8
	}
	return o
}

type StudentStats struct {
	Total      int                          `json:"total"`
	ByStatus   map[models.StudentStatus]int `json:"byStatus"`
	AverageAge int                          `json:"averageAge"`
	Retention  int                          `json:"retention"`
	TopClasses []trend.Ranked               `json:"topClasses"`
}

type TeacherStats struct {
	Total       int                             `json:"total"`
	ByStatus    map[models.EmploymentStatus]int `json:"byStatus"`
	AverageAge  int                             `json:"averageAge"`
	Turnover    int                             `json:"turnover"`
	TopSubjects []trend.Ranked                  `json:"topSubjects"`
}

type AttendanceStats struct {
	Today          string               `json:"today"`
	StudentsToday  analytics.DaySummary `json:"studentsToday"`
	TeachersToday  analytics.DaySummary `json:"teachersToday"`
	StudentHistory []analytics.DayRate  `json:"studentAttendanceHistory"`
	TeacherHistory []analytics.DayRate  `json:"teacherAttendanceHistory"`
	BestDay        analytics.DayRate    `json:"bestDay"`
	WorstDay       analytics.DayRate    `json:"worstDay"`
	MarkingHistory []analytics.DayRate  `json:"markingHistory"`
}

type PlanStats struct {
	Total       int                       `json:"total"`
	ByStatus    map[models.PlanStatus]int `json:"byStatus"`
	TopAuthors  []trend.Ranked            `json:"topAuthors"`
	TopSubjects []trend.Ranked            `json:"topSubjects"`
}

// Dashboard — полностью заполненный снимок; срезы и карты никогда не nil.
type Dashboard struct {
	GeneratedAt         time.Time       `json:"generatedAt"`
	Students            StudentStats    `json:"students"`
	Teachers            TeacherStats    `json:"teachers"`
	StudentTeacherRatio int             `json:"studentTeacherRatio"`
	Attendance          AttendanceStats `json:"attendance"`
	LessonPlans         PlanStats       `json:"lessonPlans"`
}

func Build(ctx context.Context, l *loader.Loader, opts Options) Dashboard {
	return FromSnapshot(l.Snapshot(ctx), opts)
}

// FromSnapshot — чистая часть Build, без обращения к хранилищу.
func FromSnapshot(s loader.Snapshot, opts Options) Dashboard {
	opts = opts.withDefaults()
	today := opts.Now.In(opts.Location).Format("2006-01-02")

	d := Dashboard{GeneratedAt: opts.Now}

	d.Students = StudentStats{
		Total:      len(s.Students),
		ByStatus:   analytics.StudentStatusCounts(s.Students),
		AverageAge: analytics.StudentAverageAge(s.Students),
		Retention:  analytics.RetentionRate(s.Students),
		TopClasses: trend.TopN(analytics.ClassDistribution(s.Students), opts.RankingSize),
	}
	d.Teachers = TeacherStats{
		Total:       len(s.Teachers),
		ByStatus:    analytics.TeacherStatusCounts(s.Teachers),
		AverageAge:  analytics.TeacherAverageAge(s.Teachers),
		Turnover:    analytics.TurnoverRate(s.Teachers),
		TopSubjects: trend.TopN(analytics.SubjectDistribution(s.Teachers), opts.RankingSize),
	}
	d.StudentTeacherRatio = analytics.StudentTeacherRatio(s.Students, s.Teachers)

	studentHist := analytics.AttendanceHistory(models.RoleStudents, s.AttendanceRecords[models.RoleStudents])
	teacherHist := analytics.AttendanceHistory(models.RoleTeachers, s.AttendanceRecords[models.RoleTeachers])
	best, worst := analytics.BestWorstDay(trend.Merge(teacherHist, studentHist))
	d.Attendance = AttendanceStats{
		Today:          today,
		StudentsToday:  analytics.SummarizeDay(today, s.AttendanceRecords[models.RoleStudents][today], activeStudentIDs(s.Students)),
		TeachersToday:  analytics.SummarizeDay(today, s.AttendanceRecords[models.RoleTeachers][today], activeTeacherIDs(s.Teachers)),
		StudentHistory: trend.LastN(studentHist, opts.TrendWindow),
		TeacherHistory: trend.LastN(teacherHist, opts.TrendWindow),
		BestDay:        best,
		WorstDay:       worst,
		MarkingHistory: trend.LastN(analytics.AttendanceHistory(models.RoleStudents, s.Attendance), opts.TrendWindow),
	}

	d.LessonPlans = PlanStats{
		Total:       len(s.LessonPlans),
		ByStatus:    analytics.PlanStatusCounts(s.LessonPlans),
		TopAuthors:  trend.TopN(analytics.PlansByTeacher(s.LessonPlans), opts.RankingSize),
		TopSubjects: trend.TopN(analytics.PlanSubjectDistribution(s.LessonPlans), opts.RankingSize),
	}
	return d
}

// DaySummary — разбивка за конкретную дату для роли.
func DaySummary(s loader.Snapshot, role models.RoleKey, date string) analytics.DaySummary {
	var roster []string
	switch role {
	case models.RoleStudents:
		roster = activeStudentIDs(s.Students)
	case models.RoleTeachers:
		roster = activeTeacherIDs(s.Teachers)
	}
	return analytics.SummarizeDay(date, s.AttendanceRecords[role][date], roster)
}

func activeStudentIDs(students []models.Student) []string {
	out := make([]string, 0, len(students))
	for _, st := range students {
		if st.Status == models.StudentActive && !st.ID.IsZero() {
			out = append(out, st.ID.String())
		}
	}
	return out
}

func activeTeacherIDs(teachers []models.Teacher) []string {
	out := make([]string, 0, len(teachers))
	for _, t := range teachers {
		if t.EmploymentStatus == models.TeacherActive && !t.ID.IsZero() {
			out = append(out, t.ID.String())
		}
	}
	return out
}
