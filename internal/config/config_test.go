package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("REFRESH_INTERVAL", "")
	t.Setenv("TREND_WINDOW", "")
	t.Setenv("RANKING_SIZE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StoreBackend != "memory" {
		t.Fatalf("backend = %q", cfg.StoreBackend)
	}
	if cfg.RefreshInterval != time.Minute || cfg.TrendWindow != 7 || cfg.RankingSize != 8 {
		t.Fatalf("неожиданные значения по умолчанию: %+v", cfg)
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("REFRESH_INTERVAL", "soon")
	t.Setenv("TREND_WINDOW", "-3")
	t.Setenv("RANKING_SIZE", "ten")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RefreshInterval != time.Minute || cfg.TrendWindow != 7 || cfg.RankingSize != 8 {
		t.Fatalf("ожидали значения по умолчанию, получили %+v", cfg)
	}
}

func TestLoad_BackendValidation(t *testing.T) {
	t.Run("unknown", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "sqlite")
		if _, err := Load(); err == nil {
			t.Fatal("ожидали ошибку для неизвестного бэкенда")
		}
	})
	t.Run("postgres_without_url", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "postgres")
		t.Setenv("DATABASE_URL", "")
		if _, err := Load(); err == nil {
			t.Fatal("ожидали ошибку без DATABASE_URL")
		}
	})
	t.Run("redis_case_insensitive", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "Redis")
		cfg, err := Load()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.StoreBackend != "redis" {
			t.Fatalf("backend = %q", cfg.StoreBackend)
		}
	})
}

func TestLoad_SchoolName(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("SCHOOL_NAME", "  Лицей 7 ")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SchoolName != "Лицей 7" {
		t.Fatalf("SchoolName = %q", cfg.SchoolName)
	}
}
