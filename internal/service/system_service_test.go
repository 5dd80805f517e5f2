package service_test

import (
	"context"
	"testing"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/version"
)

func TestSystemService_CheckHealth(t *testing.T) {
	t.Run("reports healthy with loaded holdings", func(t *testing.T) {
		svc := testutil.NewTestSystemService(t, testutil.SampleHoldings())

		status, err := svc.CheckHealth(context.Background())
		if err != nil {
			t.Fatalf("CheckHealth() returned unexpected error: %v", err)
		}
		if status.Holdings != 4 {
			t.Errorf("Expected 4 holdings, got %d", status.Holdings)
		}
		if status.Cache != "connected" {
			t.Errorf("Expected cache connected, got %q", status.Cache)
		}
	})

	t.Run("reports unhealthy when holdings failed to load", func(t *testing.T) {
		repo := repository.NewHoldingRepository(t.TempDir() + "/missing.json")
		svc := service.NewSystemService(repo, testutil.NewTestCache(t), nil)

		status, err := svc.CheckHealth(context.Background())
		if err == nil {
			t.Fatal("Expected error for missing holdings file")
		}
		if status.Holdings != 0 {
			t.Errorf("Expected 0 holdings, got %d", status.Holdings)
		}
	})
}

func TestSystemService_CheckVersion(t *testing.T) {
	svc := testutil.NewTestSystemService(t, nil)

	info, err := svc.CheckVersion()
	if err != nil {
		t.Fatalf("CheckVersion() returned unexpected error: %v", err)
	}
	if info.AppVersion != version.Version {
		t.Errorf("Expected version %q, got %q", version.Version, info.AppVersion)
	}
	if info.CacheBackend != "memory" {
		t.Errorf("Expected memory backend, got %q", info.CacheBackend)
	}
	if !info.Features["export"] {
		t.Error("Expected export feature enabled")
	}
}
