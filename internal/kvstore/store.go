package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Spok95/school-analytics/internal/config"
	"github.com/Spok95/school-analytics/internal/db"
)

// Известные ключи коллекций.
const (
	KeyStudents          = "students"
	KeyTeachers          = "teachers"
	KeyAttendanceRecords = "attendanceRecords"
	KeyAttendance        = "attendance"
	KeyLessonPlans       = "lessonPlans"
)

var ErrUnknownBackend = errors.New("kvstore: unknown backend")

// Store — хранилище сериализованных коллекций. Write всегда заменяет значение целиком.
type Store interface {
	Read(ctx context.Context, key string) (value string, ok bool, err error)
	Write(ctx context.Context, key, value string) error
}

// Pinger — хранилище умеет проверять соединение.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handle — открытое хранилище и функция его закрытия.
type Handle struct {
	Store   Store
	Backend string
	Close   func() error
}

// Open выбирает бэкенд по конфигу и оборачивает его метриками.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Handle, error) {
	switch cfg.StoreBackend {
	case "memory", "":
		m := NewMemory()
		if cfg.SeedFile != "" {
			if err := m.SeedFromFile(cfg.SeedFile); err != nil {
				return nil, fmt.Errorf("seed %s: %w", cfg.SeedFile, err)
			}
			log.Info("memory store seeded", zap.String("file", cfg.SeedFile))
		}
		return &Handle{Store: Instrument("memory", m), Backend: "memory", Close: func() error { return nil }}, nil

	case "postgres":
		database, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(database); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return &Handle{Store: Instrument("postgres", NewPostgres(database)), Backend: "postgres", Close: database.Close}, nil

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		r := NewRedis(client, cfg.RedisPrefix)
		if err := r.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return &Handle{Store: Instrument("redis", r), Backend: "redis", Close: client.Close}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.StoreBackend)
}
