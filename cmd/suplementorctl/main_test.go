package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yungbote/suplementor-backend/internal/domain/profile"
	httpMW "github.com/yungbote/suplementor-backend/internal/http/middleware"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
)

func TestProfileFlagsMergeFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	body := []byte(`
age: 42
gender: female
health_goals:
  - stress_reduction
current_medications:
  - sertraline
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	f := profileFlags{file: path, goals: []string{" Memory_Improvement "}, experience: "ADVANCED"}
	p, err := f.profile()
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.Age != 42 || p.Gender != profile.GenderFemale {
		t.Fatalf("expected file values, got %+v", p)
	}
	if len(p.HealthGoals) != 1 || p.HealthGoals[0] != profile.GoalMemoryImprovement {
		t.Fatalf("expected flag goals to replace file goals, got %v", p.HealthGoals)
	}
	if p.ExperienceLevel != profile.ExperienceAdvanced {
		t.Fatalf("expected advanced, got %q", p.ExperienceLevel)
	}
	if !p.TakesMedications() {
		t.Fatalf("expected medications from file")
	}
}

func TestProfileFlagsMissingFile(t *testing.T) {
	f := profileFlags{file: filepath.Join(t.TempDir(), "missing.yaml")}
	if _, err := f.profile(); err == nil {
		t.Fatalf("expected error for missing profile file")
	}
}

func TestAdminTokenCommand(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "cli-secret")
	configPath, verbose = "", false

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"admin-token", "--subject", "tester", "--ttl", "5m"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	token := strings.TrimSpace(out.String())
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected a JWT, got %q", token)
	}

	am := httpMW.NewAdminAuthMiddleware(logger.Nop(), "cli-secret")
	claims, err := am.Parse(token)
	if err != nil {
		t.Fatalf("issued token did not verify: %v", err)
	}
	if claims.Subject != "tester" || claims.Role != httpMW.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAdminTokenRequiresSecret(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "")
	configPath, verbose = "", false

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"admin-token"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected an error without a secret")
	}
}
