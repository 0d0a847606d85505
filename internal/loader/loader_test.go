package loader

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Spok95/school-analytics/internal/kvstore"
	"github.com/Spok95/school-analytics/internal/models"
)

type countingStore struct {
	*kvstore.Memory
	writes int
}

func (s *countingStore) Write(ctx context.Context, key, value string) error {
	s.writes++
	return s.Memory.Write(ctx, key, value)
}

type brokenStore struct{}

func (brokenStore) Read(context.Context, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}
func (brokenStore) Write(context.Context, string, string) error {
	return errors.New("connection refused")
}

func seed(t *testing.T, s kvstore.Store, key, value string) {
	t.Helper()
	if err := s.Write(context.Background(), key, value); err != nil {
		t.Fatal(err)
	}
}

func TestLoader_AbsentAndMalformed(t *testing.T) {
	ctx := context.Background()
	mem := kvstore.NewMemory()
	l := New(mem, nil)

	if got := l.Students(ctx); got == nil || len(got) != 0 {
		t.Fatalf("ожидали пустой непустой-указатель срез, получили %#v", got)
	}

	seed(t, mem, kvstore.KeyTeachers, "{not json")
	if got := l.Teachers(ctx); len(got) != 0 {
		t.Fatalf("битый JSON должен давать пустую коллекцию, получили %d", len(got))
	}

	seed(t, mem, kvstore.KeyAttendanceRecords, "[1,2,3]")
	if got := l.AttendanceRecords(ctx); got == nil || len(got) != 0 {
		t.Fatalf("ожидали пустую карту, получили %#v", got)
	}

	seed(t, mem, kvstore.KeyStudents, "null")
	if got := l.Students(ctx); len(got) != 0 {
		t.Fatalf("null должен давать пустую коллекцию")
	}
}

func TestLoader_StoreErrorIsRecovered(t *testing.T) {
	l := New(brokenStore{}, nil)
	snap := l.Snapshot(context.Background())
	if len(snap.Students) != 0 || len(snap.LessonPlans) != 0 || snap.AttendanceRecords == nil || snap.Attendance == nil {
		t.Fatalf("ожидали пустой снимок, получили %#v", snap)
	}
}

func TestLoader_DefaultsBackfilled(t *testing.T) {
	ctx := context.Background()
	mem := kvstore.NewMemory()
	seed(t, mem, kvstore.KeyStudents, `[{"id":1,"firstName":"Иван","lastName":"Петров","age":"12"},
		{"id":"s2","firstName":"Анна","lastName":"Сидорова","studentStatus":"Graduated","exitDate":"2024-06-01"}]`)
	seed(t, mem, kvstore.KeyTeachers, `[{"id":"t1","firstName":"Ольга","lastName":"Ким"}]`)

	l := New(mem, nil)
	st := l.Students(ctx)
	if len(st) != 2 {
		t.Fatalf("ожидали 2 ученика, получили %d", len(st))
	}
	if st[0].Status != models.StudentActive || st[1].Status != models.StudentGraduated {
		t.Fatalf("статусы: %q, %q", st[0].Status, st[1].Status)
	}
	if age, ok := st[0].Age.Int(); !ok || age != 12 {
		t.Fatalf("возраст из строки: %d %v", age, ok)
	}

	tc := l.Teachers(ctx)
	if tc[0].EmploymentStatus != models.TeacherActive || tc[0].SubjectsTaught == nil {
		t.Fatalf("учитель не нормализован: %#v", tc[0])
	}
}

func TestLoader_SkipsUndecodableItems(t *testing.T) {
	mem := kvstore.NewMemory()
	seed(t, mem, kvstore.KeyStudents, `[{"id":"a","firstName":"A"},{"id":{"x":1}},{"id":"b","firstName":"B"}]`)
	got := New(mem, nil).Students(context.Background())
	if len(got) != 2 || got[0].ID.Value != "a" || got[1].ID.Value != "b" {
		t.Fatalf("ожидали a и b, получили %#v", got)
	}
}

func TestLoader_LegacyStatusWriteBack(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Memory: kvstore.NewMemory()}
	seed(t, store.Memory, kvstore.KeyLessonPlans,
		`[{"id":1,"title":"Дроби","status":"published","teacher":"Ким"},{"id":2,"title":"Глаголы","status":"submitted"},{"id":3,"title":"Черновик"}]`)

	l := New(store, nil)
	plans := l.LessonPlans(ctx)
	want := []models.PlanStatus{models.PlanApproved, models.PlanPending, models.PlanDraft}
	for i, p := range plans {
		if p.Status != want[i] {
			t.Fatalf("план %d: статус %q, ожидали %q", i, p.Status, want[i])
		}
	}
	if store.writes != 1 {
		t.Fatalf("ожидали одну запись, получили %d", store.writes)
	}

	raw, _, _ := store.Read(ctx, kvstore.KeyLessonPlans)
	if strings.Contains(raw, "published") || strings.Contains(raw, "submitted") {
		t.Fatalf("в хранилище остались устаревшие статусы: %s", raw)
	}
	if !strings.Contains(raw, `"id":1`) {
		t.Fatalf("числовой id должен сохраниться числом: %s", raw)
	}

	// повторное чтение уже ничего не переписывает
	_ = l.LessonPlans(ctx)
	if store.writes != 1 {
		t.Fatalf("повторная миграция: writes=%d", store.writes)
	}
}

func TestLoader_NoWriteBackWhenItemsSkipped(t *testing.T) {
	store := &countingStore{Memory: kvstore.NewMemory()}
	seed(t, store.Memory, kvstore.KeyLessonPlans, `[{"id":1,"status":"published"},{"id":[]}]`)
	plans := New(store, nil).LessonPlans(context.Background())
	if len(plans) != 1 || plans[0].Status != models.PlanApproved {
		t.Fatalf("неожиданно: %#v", plans)
	}
	if store.writes != 0 {
		t.Fatal("перезапись с потерей записей недопустима")
	}
}

func TestLoader_NumericFieldsDecodeAndMigrate(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Memory: kvstore.NewMemory()}
	seed(t, store.Memory, kvstore.KeyLessonPlans, `[
		{"id":1,"title":"Дроби","status":"published","teacherId":1700000000000},
		{"id":2,"title":"Глаголы","status":"published","duration":45,"class":5},
		{"id":3,"title":"Атомы","status":"published"}]`)

	l := New(store, nil)
	plans := l.LessonPlans(ctx)
	if len(plans) != 3 {
		t.Fatalf("загружено %d планов из 3", len(plans))
	}
	for i, p := range plans {
		if p.Status != models.PlanApproved {
			t.Fatalf("план %d: статус %q", i, p.Status)
		}
	}
	if plans[0].TeacherID.String() != "1700000000000" {
		t.Fatalf("teacherId = %q", plans[0].TeacherID)
	}
	if plans[1].Duration != "45" || plans[1].Class != "5" {
		t.Fatalf("duration/class = %q/%q", plans[1].Duration, plans[1].Class)
	}
	if store.writes != 1 {
		t.Fatalf("ожидали одну перезапись, получили %d", store.writes)
	}
	raw, _, _ := store.Read(ctx, kvstore.KeyLessonPlans)
	if strings.Contains(raw, "published") {
		t.Fatalf("статус не переписан: %s", raw)
	}
	if !strings.Contains(raw, `"teacherId":1700000000000`) || !strings.Contains(raw, `"duration":45`) {
		t.Fatalf("числовые поля должны остаться числами: %s", raw)
	}
}

func TestLoader_WriteBackKeepsUnknownFields(t *testing.T) {
	ctx := context.Background()
	mem := kvstore.NewMemory()
	seed(t, mem, kvstore.KeyLessonPlans,
		`[{"id":"p1","title":"A","status":"published","resources":"учебник","notes":"важно"},{"id":"p2","title":"B"}]`)

	_ = New(mem, nil).LessonPlans(ctx)

	raw, _, _ := mem.Read(ctx, kvstore.KeyLessonPlans)
	var got []map[string]any
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatal(err)
	}
	want := []map[string]any{
		{"id": "p1", "title": "A", "status": "approved", "resources": "учебник", "notes": "важно"},
		{"id": "p2", "title": "B"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("после миграции:\n%#v\nожидали\n%#v", got, want)
	}
}

func TestNormalizeLessonPlans_Idempotent(t *testing.T) {
	in := []models.LessonPlan{
		{Title: "a", Status: "published"},
		{Title: "b", Status: "submitted"},
		{Title: "c", Status: "rejected"},
		{Title: "d"},
	}
	once, changed := NormalizeLessonPlans(in)
	if !changed {
		t.Fatal("ожидали признак изменения")
	}
	twice, changedAgain := NormalizeLessonPlans(once)
	if changedAgain {
		t.Fatal("повторная нормализация ничего не должна менять")
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("normalize(normalize(x)) != normalize(x)\n%#v\n%#v", once, twice)
	}
}

func TestLoader_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := kvstore.NewMemory()
	students := []models.Student{
		{ID: models.NewID("s1"), FirstName: "Иван", LastName: "Петров", Age: models.AgeOf(11), Class: "5А",
			Status: models.StudentActive, PrimaryGuardian: &models.Guardian{Name: "Пётр", Phone: "+7 900"}},
		{ID: models.ID{Value: "1700000000000", Numeric: true}, FirstName: "Анна", LastName: "Ли",
			Status: models.StudentTransferred, ExitDate: "2024-01-10"},
	}
	b, err := json.Marshal(students)
	if err != nil {
		t.Fatal(err)
	}
	seed(t, mem, kvstore.KeyStudents, string(b))

	got := New(mem, nil).Students(ctx)
	if !reflect.DeepEqual(got, students) {
		t.Fatalf("round-trip не совпал:\n%#v\n%#v", got, students)
	}
}

func TestLoader_Attendance(t *testing.T) {
	mem := kvstore.NewMemory()
	seed(t, mem, kvstore.KeyAttendanceRecords,
		`{"students":{"2024-03-01":{"s1":"present","s2":"Late","s3":""}},"teachers":{"2024-03-01":{"t1":"absent"}}}`)
	seed(t, mem, kvstore.KeyAttendance, `{"2024-03-02":{"s1":"absent"}}`)

	l := New(mem, nil)
	recs := l.AttendanceRecords(context.Background())
	day := recs[models.RoleStudents]["2024-03-01"]
	if len(day) != 2 || day["s2"] != models.Late {
		t.Fatalf("отметки: %#v", day)
	}
	if recs.Status(models.RoleStudents, "2024-03-01", "s3") != models.Unmarked {
		t.Fatal("пустая отметка должна считаться неотмеченной")
	}
	daily := l.DailyAttendance(context.Background())
	if daily["2024-03-02"]["s1"] != models.Absent {
		t.Fatalf("attendance: %#v", daily)
	}
}
