// Package loader читает коллекции из хранилища и приводит записи к текущей схеме.
// Чтение никогда не возвращает ошибку: битые или отсутствующие данные дают пустую коллекцию.
package loader

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/Spok95/school-analytics/internal/ctxutil"
	"github.com/Spok95/school-analytics/internal/kvstore"
	"github.com/Spok95/school-analytics/internal/metrics"
	"github.com/Spok95/school-analytics/internal/models"
	"github.com/Spok95/school-analytics/internal/observability"
)

type Loader struct {
	store kvstore.Store
	log   *zap.Logger
	locks *collectionLocks
}

func New(store kvstore.Store, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{store: store, log: log, locks: newCollectionLocks()}
}

// Snapshot — все коллекции, прочитанные за один проход.
type Snapshot struct {
	Students          []models.Student
	Teachers          []models.Teacher
	LessonPlans       []models.LessonPlan
	AttendanceRecords models.AttendanceRecords
	Attendance        models.DailyAttendance
}

func (l *Loader) Snapshot(ctx context.Context) Snapshot {
	return Snapshot{
		Students:          l.Students(ctx),
		Teachers:          l.Teachers(ctx),
		LessonPlans:       l.LessonPlans(ctx),
		AttendanceRecords: l.AttendanceRecords(ctx),
		Attendance:        l.DailyAttendance(ctx),
	}
}

func (l *Loader) Students(ctx context.Context) []models.Student {
	items, _ := readList[models.Student](ctx, l, kvstore.KeyStudents)
	return NormalizeStudents(items)
}

func (l *Loader) Teachers(ctx context.Context) []models.Teacher {
	items, _ := readList[models.Teacher](ctx, l, kvstore.KeyTeachers)
	return NormalizeTeachers(items)
}

// LessonPlans читает планы и, если встретились устаревшие статусы,
// записывает коллекцию обратно целиком. В сохранённых записях меняется
// только поле status, остальные поля (в том числе незнакомые) не трогаются.
func (l *Loader) LessonPlans(ctx context.Context) []models.LessonPlan {
	// чтение и перезапись под одной блокировкой: повторный читатель увидит уже мигрированные данные
	unlock := l.locks.lock(kvstore.KeyLessonPlans)
	defer unlock()

	elems, ok := l.readElems(ctx, kvstore.KeyLessonPlans)
	items, complete := decodeList[models.LessonPlan](l, kvstore.KeyLessonPlans, elems)
	plans, changed := NormalizeLessonPlans(items)
	if !changed {
		return plans
	}
	if !ok || !complete {
		// часть записей не разобралась — перезапись потеряла бы их
		l.log.Warn("legacy write-back skipped: collection has undecodable items",
			zap.String("collection", kvstore.KeyLessonPlans))
		return plans
	}
	patched, err := patchPlanStatuses(elems)
	if err == nil {
		err = l.writeBack(ctx, kvstore.KeyLessonPlans, patched)
	}
	if err != nil {
		l.log.Error("legacy write-back failed", zap.String("collection", kvstore.KeyLessonPlans), zap.Error(err))
		observability.CaptureCollectionErr(kvstore.KeyLessonPlans, err)
		return plans
	}
	metrics.LegacyMigrations.WithLabelValues(kvstore.KeyLessonPlans).Inc()
	l.log.Info("legacy lesson plan statuses migrated", zap.Int("plans", len(plans)))
	return plans
}

func (l *Loader) AttendanceRecords(ctx context.Context) models.AttendanceRecords {
	var recs models.AttendanceRecords
	if !l.readValue(ctx, kvstore.KeyAttendanceRecords, &recs) {
		return models.AttendanceRecords{}
	}
	return NormalizeAttendanceRecords(recs)
}

func (l *Loader) DailyAttendance(ctx context.Context) models.DailyAttendance {
	var daily models.DailyAttendance
	if !l.readValue(ctx, kvstore.KeyAttendance, &daily) {
		return models.DailyAttendance{}
	}
	return NormalizeDaily(daily)
}

// raw возвращает сериализованную коллекцию или "" если её нет/не удалось прочитать.
func (l *Loader) raw(ctx context.Context, key string) string {
	ctx = ctxutil.WithOp(ctx, "load")
	v, ok, err := l.store.Read(ctx, key)
	if err != nil {
		l.log.Error("store read failed", zap.String("collection", key), zap.Error(err))
		observability.CaptureCollectionErr(key, err)
		return ""
	}
	if !ok {
		return ""
	}
	v = strings.TrimSpace(v)
	if v == "null" {
		return ""
	}
	return v
}

func (l *Loader) readValue(ctx context.Context, key string, dst any) bool {
	v := l.raw(ctx, key)
	if v == "" {
		return false
	}
	if err := json.Unmarshal([]byte(v), dst); err != nil {
		l.decodeFailed(key, err)
		return false
	}
	return true
}

// readElems возвращает элементы JSON-массива без разбора.
// ok=false, если значение есть, но массивом не является.
func (l *Loader) readElems(ctx context.Context, key string) ([]json.RawMessage, bool) {
	v := l.raw(ctx, key)
	if v == "" {
		return nil, true
	}
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(v), &elems); err != nil {
		l.decodeFailed(key, err)
		return nil, false
	}
	return elems, true
}

// decodeList разбирает элементы по одному: битая запись пропускается,
// остальные остаются. complete=false, если что-то пропущено.
func decodeList[T any](l *Loader, key string, elems []json.RawMessage) (items []T, complete bool) {
	items = make([]T, 0, len(elems))
	complete = true
	for i, e := range elems {
		var it T
		if err := json.Unmarshal(e, &it); err != nil {
			l.log.Warn("record skipped", zap.String("collection", key), zap.Int("index", i), zap.Error(err))
			complete = false
			continue
		}
		items = append(items, it)
	}
	return items, complete
}

func readList[T any](ctx context.Context, l *Loader, key string) ([]T, bool) {
	elems, ok := l.readElems(ctx, key)
	items, complete := decodeList[T](l, key, elems)
	return items, ok && complete
}

// patchPlanStatuses переписывает в каждом сохранённом плане только status.
// Пустой или отсутствующий статус остаётся как есть: draft по умолчанию
// подставляется только в памяти.
func patchPlanStatuses(elems []json.RawMessage) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(elems))
	for _, e := range elems {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(e, &obj); err != nil {
			return nil, err
		}
		var st models.PlanStatus
		if raw, ok := obj["status"]; ok && obj != nil {
			if err := json.Unmarshal(raw, &st); err != nil {
				return nil, err
			}
		}
		n := NormalizePlanStatus(st)
		if st == "" || n == st {
			out = append(out, e)
			continue
		}
		b, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		obj["status"] = b
		if e, err = json.Marshal(obj); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (l *Loader) decodeFailed(key string, err error) {
	metrics.DecodeFailures.WithLabelValues(key).Inc()
	l.log.Error("collection deserialization failed", zap.String("collection", key), zap.Error(err))
}

func (l *Loader) writeBack(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	ctx = ctxutil.WithOp(ctx, "write-back")
	return l.store.Write(ctx, key, string(b))
}
