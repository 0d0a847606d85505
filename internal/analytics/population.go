package analytics

import (
	"strings"

	"github.com/Spok95/school-analytics/internal/models"
)

// Distribution — ключ группировки -> количество.
type Distribution map[string]int

// Total — сумма всех счётчиков.
func (d Distribution) Total() int {
	n := 0
	for _, c := range d {
		n += c
	}
	return n
}

// CountStatuses считает записи по каждому значению перечисления.
// Неизвестные статусы ни в одну корзину не попадают.
func CountStatuses[S ~string](enum []S, got []S) map[S]int {
	out := make(map[S]int, len(enum))
	for _, e := range enum {
		out[e] = 0
	}
	for _, s := range got {
		if _, ok := out[s]; ok {
			out[s]++
		}
	}
	return out
}

func StudentStatusCounts(students []models.Student) map[models.StudentStatus]int {
	got := make([]models.StudentStatus, 0, len(students))
	for _, s := range students {
		got = append(got, s.Status)
	}
	return CountStatuses(models.StudentStatuses, got)
}

func TeacherStatusCounts(teachers []models.Teacher) map[models.EmploymentStatus]int {
	got := make([]models.EmploymentStatus, 0, len(teachers))
	for _, t := range teachers {
		got = append(got, t.EmploymentStatus)
	}
	return CountStatuses(models.EmploymentStatuses, got)
}

// AverageAge — среднее по валидным возрастам, округлённое; 0 если таких нет.
func AverageAge(ages []models.Age) int {
	sum, n := 0, 0
	for _, a := range ages {
		v, ok := a.Int()
		if !ok {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return Round(float64(sum) / float64(n))
}

func StudentAverageAge(students []models.Student) int {
	ages := make([]models.Age, 0, len(students))
	for _, s := range students {
		ages = append(ages, s.Age)
	}
	return AverageAge(ages)
}

func TeacherAverageAge(teachers []models.Teacher) int {
	ages := make([]models.Age, 0, len(teachers))
	for _, t := range teachers {
		ages = append(ages, t.Age)
	}
	return AverageAge(ages)
}

// ClassDistribution — активные ученики по классам; пустой класс не учитывается.
func ClassDistribution(students []models.Student) Distribution {
	d := Distribution{}
	for _, s := range students {
		if s.Status != models.StudentActive {
			continue
		}
		if k := strings.TrimSpace(s.Class.String()); k != "" {
			d[k]++
		}
	}
	return d
}

// SubjectDistribution — активные учителя по предметам.
// Каждый предмет учитывается один раз на учителя.
func SubjectDistribution(teachers []models.Teacher) Distribution {
	d := Distribution{}
	for _, t := range teachers {
		if t.EmploymentStatus != models.TeacherActive {
			continue
		}
		seen := make(map[string]struct{}, len(t.SubjectsTaught))
		for _, subj := range t.SubjectsTaught {
			k := strings.TrimSpace(subj)
			if k == "" {
				continue
			}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			d[k]++
		}
	}
	return d
}

// RetentionRate — доля active+graduated среди всех учеников.
func RetentionRate(students []models.Student) int {
	c := StudentStatusCounts(students)
	return Percent(c[models.StudentActive]+c[models.StudentGraduated], len(students))
}

// TurnoverRate — доля retired+resigned среди всех учителей.
func TurnoverRate(teachers []models.Teacher) int {
	c := TeacherStatusCounts(teachers)
	return Percent(c[models.TeacherRetired]+c[models.TeacherResigned], len(teachers))
}

// StudentTeacherRatio — активных учеников на одного активного учителя.
func StudentTeacherRatio(students []models.Student, teachers []models.Teacher) int {
	return Ratio(StudentStatusCounts(students)[models.StudentActive], TeacherStatusCounts(teachers)[models.TeacherActive])
}
