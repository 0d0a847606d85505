package export

import (
	"strconv"

	"github.com/Spok95/school-analytics/internal/analytics"
	"github.com/Spok95/school-analytics/internal/dashboard"
	"github.com/Spok95/school-analytics/internal/models"
	"github.com/Spok95/school-analytics/internal/trend"
)

var roleLabels = map[models.RoleKey]string{
	models.RoleStudents: "Ученики",
	models.RoleTeachers: "Учителя",
}

// DashboardSheets раскладывает снимок по листам отчёта.
func DashboardSheets(d dashboard.Dashboard) []SheetSpec {
	return []SheetSpec{
		summarySheet(d),
		rankingSheet("Классы", "Класс", "Учеников", d.Students.TopClasses),
		rankingSheet("Предметы", "Предмет", "Учителей", d.Teachers.TopSubjects),
		attendanceSheet(d),
		plansSheet(d),
	}
}

func NewDashboardWorkbook(d dashboard.Dashboard) (*Workbook, error) {
	return NewWorkbook(DashboardSheets(d))
}

func summarySheet(d dashboard.Dashboard) SheetSpec {
	itoa := strconv.Itoa
	rows := [][]string{
		{"Учеников всего", itoa(d.Students.Total)},
	}
	for _, st := range models.StudentStatuses {
		rows = append(rows, []string{"Ученики: " + string(st), itoa(d.Students.ByStatus[st])})
	}
	rows = append(rows,
		[]string{"Средний возраст учеников", itoa(d.Students.AverageAge)},
		[]string{"Удержание учеников, %", itoa(d.Students.Retention)},
		[]string{"Учителей всего", itoa(d.Teachers.Total)},
	)
	for _, st := range models.EmploymentStatuses {
		rows = append(rows, []string{"Учителя: " + string(st), itoa(d.Teachers.ByStatus[st])})
	}
	rows = append(rows,
		[]string{"Средний возраст учителей", itoa(d.Teachers.AverageAge)},
		[]string{"Текучесть учителей, %", itoa(d.Teachers.Turnover)},
		[]string{"Учеников на учителя", itoa(d.StudentTeacherRatio)},
		[]string{"Посещаемость учеников сегодня, %", itoa(d.Attendance.StudentsToday.Rate)},
		[]string{"Посещаемость учителей сегодня, %", itoa(d.Attendance.TeachersToday.Rate)},
		[]string{"Лучший день", dayLabel(d.Attendance.BestDay.Date, d.Attendance.BestDay.Rate)},
		[]string{"Худший день", dayLabel(d.Attendance.WorstDay.Date, d.Attendance.WorstDay.Rate)},
	)
	return SheetSpec{Title: "Сводка", Header: []string{"Показатель", "Значение"}, Rows: rows}
}

func rankingSheet(title, keyHeader, countHeader string, ranked []trend.Ranked) SheetSpec {
	rows := make([][]string, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, []string{r.Key, strconv.Itoa(r.Count)})
	}
	return SheetSpec{Title: title, Header: []string{keyHeader, countHeader}, Rows: rows}
}

func attendanceSheet(d dashboard.Dashboard) SheetSpec {
	rows := make([][]string, 0, len(d.Attendance.StudentHistory)+len(d.Attendance.TeacherHistory))
	for _, h := range d.Attendance.StudentHistory {
		rows = append(rows, []string{h.Date, roleLabels[models.RoleStudents], strconv.Itoa(h.Rate)})
	}
	for _, h := range d.Attendance.TeacherHistory {
		rows = append(rows, []string{h.Date, roleLabels[models.RoleTeachers], strconv.Itoa(h.Rate)})
	}
	return SheetSpec{Title: "Посещаемость", Header: []string{"Дата", "Роль", "Посещаемость, %"}, Rows: rows}
}

func plansSheet(d dashboard.Dashboard) SheetSpec {
	rows := make([][]string, 0, len(models.PlanStatuses)+len(d.LessonPlans.TopAuthors))
	for _, st := range models.PlanStatuses {
		rows = append(rows, []string{"Статус", string(st), strconv.Itoa(d.LessonPlans.ByStatus[st])})
	}
	for _, a := range d.LessonPlans.TopAuthors {
		rows = append(rows, []string{"Автор", a.Key, strconv.Itoa(a.Count)})
	}
	for _, s := range d.LessonPlans.TopSubjects {
		rows = append(rows, []string{"Предмет", s.Key, strconv.Itoa(s.Count)})
	}
	return SheetSpec{Title: "Планы уроков", Header: []string{"Группа", "Значение", "Количество"}, Rows: rows}
}

func dayLabel(date string, rate int) string {
	if date == "" || date == analytics.NotApplicable {
		return "нет данных"
	}
	return date + " (" + strconv.Itoa(rate) + "%)"
}
