package dashboard

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/Spok95/school-analytics/internal/analytics"
	"github.com/Spok95/school-analytics/internal/kvstore"
	"github.com/Spok95/school-analytics/internal/loader"
	"github.com/Spok95/school-analytics/internal/metrics"
	"github.com/Spok95/school-analytics/internal/models"
)

var fixedNow = time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

func opts() Options {
	return Options{Now: fixedNow, Location: time.UTC, TrendWindow: 7, RankingSize: 8}
}

func TestBuild_EmptyStoreIsFullyDefined(t *testing.T) {
	d := Build(context.Background(), loader.New(kvstore.NewMemory(), nil), opts())

	if d.Students.Total != 0 || d.Students.AverageAge != 0 || d.Students.Retention != 0 || d.StudentTeacherRatio != 0 {
		t.Fatalf("ожидали нули: %#v", d)
	}
	if d.Attendance.BestDay.Date != analytics.NotApplicable || d.Attendance.WorstDay.Date != analytics.NotApplicable {
		t.Fatalf("лучший/худший день: %#v %#v", d.Attendance.BestDay, d.Attendance.WorstDay)
	}

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "null") {
		t.Fatalf("в снимке не должно быть null: %s", b)
	}
}

func TestBuild_FromStore(t *testing.T) {
	ctx := context.Background()
	mem := kvstore.NewMemory()
	write := func(k, v string) {
		if err := mem.Write(ctx, k, v); err != nil {
			t.Fatal(err)
		}
	}
	write(kvstore.KeyStudents, `[
		{"id":"s1","firstName":"A","class":"5А","age":10},
		{"id":"s2","firstName":"B","class":"5А","age":12,"studentStatus":"active"},
		{"id":"s3","firstName":"C","class":"6Б","studentStatus":"graduated"},
		{"id":"s4","firstName":"D","class":"6Б","studentStatus":"withdrawn"}]`)
	write(kvstore.KeyTeachers, `[
		{"id":"t1","firstName":"Ольга","lastName":"Ким","subjectsTaught":["Математика","Физика"]},
		{"id":"t2","firstName":"Иван","lastName":"Ли","employmentStatus":"retired","subjectsTaught":["Химия"]}]`)
	write(kvstore.KeyAttendanceRecords, `{
		"students":{"2024-03-08":{"s1":"present","s2":"absent"},"2024-03-09":{"s1":"late"},"2024-03-07":{}},
		"teachers":{"2024-03-08":{"t1":"present"}}}`)
	write(kvstore.KeyLessonPlans, `[{"id":1,"title":"Дроби","teacher":"Ольга Ким","teacherId":"t1","subject":"Математика","status":"published"}]`)

	d := Build(ctx, loader.New(mem, nil), opts())

	if d.Students.Total != 4 || d.Students.Retention != 75 || d.Students.AverageAge != 11 {
		t.Fatalf("students: %#v", d.Students)
	}
	if d.Teachers.Turnover != 50 || d.StudentTeacherRatio != 2 {
		t.Fatalf("teachers: %#v ratio=%d", d.Teachers, d.StudentTeacherRatio)
	}
	if len(d.Students.TopClasses) != 1 || d.Students.TopClasses[0].Key != "5А" {
		t.Fatalf("top classes: %#v", d.Students.TopClasses)
	}

	hist := d.Attendance.StudentHistory
	if len(hist) != 2 || hist[0].Date != "2024-03-08" || hist[0].Rate != 50 || hist[1].Rate != 100 {
		t.Fatalf("history: %#v", hist)
	}
	// лучший — первый встреченный максимум среди учителей+учеников
	if d.Attendance.BestDay.Role != models.RoleTeachers || d.Attendance.WorstDay.Rate != 50 {
		t.Fatalf("best=%#v worst=%#v", d.Attendance.BestDay, d.Attendance.WorstDay)
	}
	today := d.Attendance.StudentsToday
	if today.Date != "2024-03-09" || today.Late != 1 || today.Unmarked != 1 || today.Rate != 100 {
		t.Fatalf("today: %#v", today)
	}
	if d.LessonPlans.ByStatus[models.PlanApproved] != 1 {
		t.Fatalf("plans: %#v", d.LessonPlans)
	}
}

func TestPublish(t *testing.T) {
	d := FromSnapshot(loader.Snapshot{
		Students: []models.Student{{Status: models.StudentActive}, {Status: models.StudentGraduated}},
		Teachers: []models.Teacher{{EmploymentStatus: models.TeacherActive, SubjectsTaught: []string{}}},
	}, opts())
	Publish(d)

	if got := gaugeValue(t, metrics.Rates.WithLabelValues("student_retention")); got != 100 {
		t.Fatalf("retention gauge = %v", got)
	}
	if got := gaugeValue(t, metrics.StudentTeacherRatio); got != 1 {
		t.Fatalf("ratio gauge = %v", got)
	}
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatal(err)
	}
	return m.GetGauge().GetValue()
}
