// Package trend готовит агрегаты к показу: окно последних дней и топ-N рейтинги.
// Функции всегда возвращают непустой (не nil) срез, даже если данных нет.
package trend

import (
	"sort"
	"time"

	"github.com/Spok95/school-analytics/internal/analytics"
)

// Ranked — строка рейтинга.
type Ranked struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// LastN возвращает последние n записей по календарной дате, по возрастанию.
// Если записей меньше n — все; нулями не добиваем. Записи с нераспознанной
// датой отбрасываются. n <= 0 — без ограничения.
func LastN(series []analytics.DayRate, n int) []analytics.DayRate {
	type dated struct {
		t time.Time
		d analytics.DayRate
	}
	tmp := make([]dated, 0, len(series))
	for _, d := range series {
		t, err := time.Parse(analytics.DateLayout, d.Date)
		if err != nil {
			continue
		}
		tmp = append(tmp, dated{t: t, d: d})
	}
	sort.SliceStable(tmp, func(i, j int) bool { return tmp[i].t.Before(tmp[j].t) })
	if n > 0 && len(tmp) > n {
		tmp = tmp[len(tmp)-n:]
	}
	out := make([]analytics.DayRate, 0, len(tmp))
	for _, x := range tmp {
		out = append(out, x.d)
	}
	return out
}

// TopN сортирует по убыванию количества, при равенстве — по ключу, и обрезает до n.
// n <= 0 — без ограничения.
func TopN(d analytics.Distribution, n int) []Ranked {
	out := make([]Ranked, 0, len(d))
	for k, c := range d {
		out = append(out, Ranked{Key: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Merge склеивает истории ролей в указанном порядке (для лучшего/худшего дня).
func Merge(histories ...[]analytics.DayRate) []analytics.DayRate {
	total := 0
	for _, h := range histories {
		total += len(h)
	}
	out := make([]analytics.DayRate, 0, total)
	for _, h := range histories {
		out = append(out, h...)
	}
	return out
}
