package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Spok95/school-analytics/internal/analytics"
	"github.com/Spok95/school-analytics/internal/dashboard"
	"github.com/Spok95/school-analytics/internal/export"
	"github.com/Spok95/school-analytics/internal/jobs"
	"github.com/Spok95/school-analytics/internal/kvstore"
	"github.com/Spok95/school-analytics/internal/loader"
	"github.com/Spok95/school-analytics/internal/metrics"
	"github.com/Spok95/school-analytics/internal/models"
)

type HTTPServer struct {
	srv *http.Server
}

// Deps — всё, что нужно обработчикам.
type Deps struct {
	Store    kvstore.Store
	Loader   *loader.Loader
	Snapshot *jobs.Snapshotter
	Log      *zap.Logger
	School   string
}

func StartHTTP(ctx context.Context, addr string, deps Deps) *HTTPServer {
	srv := &http.Server{Addr: addr, Handler: NewMux(deps)}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			deps.Log.Error("http server stopped", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx) // закрываем аккуратно
	}()

	return &HTTPServer{srv: srv}
}

func NewMux(deps Deps) *http.ServeMux {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
		defer cancel()
		if p, ok := deps.Store.(kvstore.Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				http.Error(w, "store not ok: "+err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("GET /api/dashboard", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, deps.Log, deps.Snapshot.Latest(r.Context()))
	})

	mux.HandleFunc("GET /api/attendance/{role}/{date}", func(w http.ResponseWriter, r *http.Request) {
		role := models.RoleKey(r.PathValue("role"))
		if role != models.RoleStudents && role != models.RoleTeachers {
			http.Error(w, "unknown role", http.StatusBadRequest)
			return
		}
		date := r.PathValue("date")
		if _, err := time.Parse("2006-01-02", date); err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		snap := deps.Loader.Snapshot(r.Context())
		writeJSON(w, deps.Log, dashboard.DaySummary(snap, role, date))
	})

	// identity приходит от внешнего слоя авторизации уже определённой
	mux.HandleFunc("GET /api/lesson-plans", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		actor := models.Actor{ID: q.Get("actorId"), Name: q.Get("actorName"), Role: models.Role(q.Get("role"))}
		plans := deps.Loader.LessonPlans(r.Context())
		writeJSON(w, deps.Log, struct {
			Plans []models.LessonPlan       `json:"plans"`
			Own   map[models.PlanStatus]int `json:"own"`
			All   map[models.PlanStatus]int `json:"all"`
		}{
			Plans: analytics.VisiblePlans(plans, actor),
			Own:   analytics.OwnPlanCounts(plans, actor),
			All:   analytics.PlanStatusCounts(plans),
		})
	})

	mux.HandleFunc("GET /api/export.xlsx", func(w http.ResponseWriter, r *http.Request) {
		d := deps.Snapshot.Latest(r.Context())
		wb, err := export.NewDashboardWorkbook(d)
		if err != nil {
			deps.Log.Error("export failed", zap.Error(err))
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		defer func() { _ = wb.Close() }()
		name := export.BuildDashboardFilename(deps.School, d.GeneratedAt)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename*=UTF-8''`+url.PathEscape(name))
		if _, err := wb.WriteTo(w); err != nil {
			deps.Log.Warn("export write failed", zap.Error(err))
		}
	})

	return mux
}

func writeJSON(w http.ResponseWriter, log *zap.Logger, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("json encode failed", zap.Error(err))
	}
}
