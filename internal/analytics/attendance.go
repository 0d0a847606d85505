package analytics

import (
	"sort"
	"time"

	"github.com/Spok95/school-analytics/internal/models"
)

// NotApplicable — дата лучшего/худшего дня, когда данных нет.
const NotApplicable = "N/A"

// DateLayout — формат ключей-дат посещаемости.
const DateLayout = "2006-01-02"

// DayRate — посещаемость роли за одну дату.
type DayRate struct {
	Date string         `json:"date"`
	Role models.RoleKey `json:"role,omitempty"`
	Rate int            `json:"rate"`
}

// DaySummary — разбивка отметок за день.
type DaySummary struct {
	Date     string `json:"date"`
	Present  int    `json:"present"`
	Absent   int    `json:"absent"`
	Late     int    `json:"late"`
	Unmarked int    `json:"unmarked"`
	Marked   int    `json:"marked"`
	Rate     int    `json:"rate"`
}

// AttendanceRate — round(100*(present+late)/marked); 0 если отметок нет.
func AttendanceRate(marks models.DayMarks) int {
	attended, marked := 0, 0
	for _, st := range marks {
		if !st.Marked() {
			continue
		}
		marked++
		if st.Attended() {
			attended++
		}
	}
	return Percent(attended, marked)
}

// SummarizeDay считает отметки за дату по списку людей. Неотмеченные —
// участники списка без отметки. Если roster пуст, неотмеченных 0.
func SummarizeDay(date string, marks models.DayMarks, roster []string) DaySummary {
	s := DaySummary{Date: date}
	for _, st := range marks {
		switch st {
		case models.Present:
			s.Present++
		case models.Absent:
			s.Absent++
		case models.Late:
			s.Late++
		}
	}
	for _, id := range roster {
		if !marks[id].Marked() {
			s.Unmarked++
		}
	}
	s.Marked = s.Present + s.Absent + s.Late
	s.Rate = Percent(s.Present+s.Late, s.Marked)
	return s
}

// AttendanceHistory — посещаемость по датам в хронологическом порядке.
// Даты без единой отметки и ключи не в формате YYYY-MM-DD в историю не попадают.
func AttendanceHistory(role models.RoleKey, daily models.DailyAttendance) []DayRate {
	out := make([]DayRate, 0, len(daily))
	for date, marks := range daily {
		if !hasMarks(marks) {
			continue
		}
		if _, err := time.Parse(DateLayout, date); err != nil {
			continue
		}
		out = append(out, DayRate{Date: date, Role: role, Rate: AttendanceRate(marks)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func hasMarks(marks models.DayMarks) bool {
	for _, st := range marks {
		if st.Marked() {
			return true
		}
	}
	return false
}

// BestWorstDay ищет максимум и минимум; при равенстве побеждает первый встреченный.
// Пустой вход даёт NotApplicable для обоих.
func BestWorstDay(merged []DayRate) (best, worst DayRate) {
	if len(merged) == 0 {
		na := DayRate{Date: NotApplicable}
		return na, na
	}
	best, worst = merged[0], merged[0]
	for _, d := range merged[1:] {
		if d.Rate > best.Rate {
			best = d
		}
		if d.Rate < worst.Rate {
			worst = d
		}
	}
	return best, worst
}
