//go:build integration

package testutils

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"testing"
)

// TestMain ensures the shared Postgres container is purged even when the run is interrupted
func TestMain(m *testing.M) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Received interrupt signal, cleaning up Docker containers...")
		CleanupSharedContainer()
		os.Exit(1)
	}()

	code := m.Run()

	CleanupSharedContainer()
	os.Exit(code)
}

func TestSharedContainerMigrated(t *testing.T) {
	s := SetupTestSuite(t)
	for _, table := range []string{"products", "product_teams", "jobstates"} {
		if !s.DB.Migrator().HasTable(table) {
			t.Fatalf("table %s missing after SQL migrations", table)
		}
	}
	if !s.DB.Migrator().HasColumn("components", "active") {
		t.Fatal("components.active missing after SQL migrations")
	}
}
