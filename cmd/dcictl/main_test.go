package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dci-control-server/internal/config"
	"dci-control-server/internal/testutils"

	"gorm.io/gorm"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out, "dcictl dev") {
		t.Errorf("expected output to contain 'dcictl dev', got: %s", out)
	}
}

func TestMigrateList(t *testing.T) {
	out, err := run(t, "migrate", "list")
	if err != nil {
		t.Fatalf("migrate list failed: %v", err)
	}
	if !strings.HasPrefix(out, "000001_initial_schema.down.sql") {
		t.Errorf("expected migrations in apply order, got: %s", out)
	}
}

func TestMigrateDownRequiresSteps(t *testing.T) {
	_, err := run(t, "migrate", "down", "--steps", "0")
	if err == nil || !strings.Contains(err.Error(), "--steps") {
		t.Fatalf("expected a --steps error, got %v", err)
	}
}

func TestSeedCmd(t *testing.T) {
	db := testutils.NewSQLiteDB(t)
	orig := openDB
	openDB = func(*config.Config) (*gorm.DB, error) { return db, nil }
	defer func() { openDB = orig }()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	doc := "teams:\n  - name: admin\nusers:\n  - {name: admin, password: admin, team: admin, role: admin}\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "seed", "--migrate=false", "--file", path)
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if !strings.Contains(out, "team: 1 created") || !strings.Contains(out, "user: 1 created") {
		t.Errorf("unexpected seed output: %s", out)
	}
}

func TestSeedCmdWithoutFile(t *testing.T) {
	t.Setenv("SEED_FILE", "")
	_, err := run(t, "seed", "--migrate=false")
	if err == nil || !strings.Contains(err.Error(), "no seed file") {
		t.Fatalf("expected a missing file error, got %v", err)
	}
}
