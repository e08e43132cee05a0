package main

import (
	"context"
	"strings"
	"testing"

	"enwiro/internal/cookbook"
	"enwiro/internal/testsupport"
)

func TestActivateCallsAdapterWithCorrectName(t *testing.T) {
	tc := newTestContext(t)
	tc.createEnvironment(t, "my-project")

	cmd := newActivateCommand(tc.commandContext)
	cmd.SetArgs([]string{"my-project"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("activate failed: %v", err)
	}

	if len(tc.adapter.Activations) != 1 || tc.adapter.Activations[0] != "my-project" {
		t.Errorf("adapter activations = %v", tc.adapter.Activations)
	}
}

func TestActivateCooksRecipeIfNeeded(t *testing.T) {
	tc := newTestContext(t)
	target := cookedTarget(t)

	fake := testsupport.NewFakeCookbook("git", "new-project")
	fake.CookResults["new-project"] = target
	tc.cookbooks = []cookbook.Cookbook{fake}

	cmd := newActivateCommand(tc.commandContext)
	cmd.SetArgs([]string{"new-project"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("activate failed: %v", err)
	}

	if _, err := tc.getOrCookEnvironment(context.Background(), "new-project"); err != nil {
		t.Errorf("environment should exist after activate: %v", err)
	}
}

func TestActivateSucceedsWithoutRecipe(t *testing.T) {
	tc := newTestContext(t)

	cmd := newActivateCommand(tc.commandContext)
	cmd.SetArgs([]string{"unknown"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("activate should succeed even when cooking fails: %v", err)
	}
	if len(tc.adapter.Activations) != 1 {
		t.Errorf("adapter should still be called, got %v", tc.adapter.Activations)
	}
}

func TestActivateRecordsUsage(t *testing.T) {
	tc := newTestContext(t)
	tc.createEnvironment(t, "my-project")

	cmd := newActivateCommand(tc.commandContext)
	cmd.SetArgs([]string{"my-project"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	stats := tc.statsStore()
	if stats == nil {
		t.Fatal("stats store should be enabled in tests")
	}
	row, ok, err := stats.Get(context.Background(), "my-project")
	if err != nil || !ok {
		t.Fatalf("expected stats row: ok=%v err=%v", ok, err)
	}
	if row.ActivationCount != 1 {
		t.Errorf("activation_count = %d, want 1", row.ActivationCount)
	}
}

func TestListEnvironmentsPrintsNames(t *testing.T) {
	tc := newTestContext(t)
	tc.createEnvironment(t, "foobar")
	tc.createEnvironment(t, "baz")

	cmd := newListEnvironmentsCommand(tc.commandContext)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("list-environments failed: %v", err)
	}

	output := tc.stdout.String()
	if !strings.Contains(output, "foobar\n") || !strings.Contains(output, "baz\n") {
		t.Errorf("output = %q", output)
	}
}

func TestShowPathPrintsEnvironmentPath(t *testing.T) {
	tc := newTestContext(t)
	path := tc.createEnvironment(t, "foobar")

	cmd := newShowPathCommand(tc.commandContext)
	cmd.SetArgs([]string{"foobar"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("show-path failed: %v", err)
	}
	if got := strings.TrimSpace(tc.stdout.String()); got != path {
		t.Errorf("output = %q, want %q", got, path)
	}
}

func TestShowPathErrorsForMissingEnvironment(t *testing.T) {
	tc := newTestContext(t)
	tc.createEnvironment(t, "existing-env")

	cmd := newShowPathCommand(tc.commandContext)
	cmd.SetArgs([]string{"non-existing-env"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for unknown environment")
	}
}

func TestShowPathUsesAdapterWhenNameOmitted(t *testing.T) {
	tc := newTestContext(t)
	path := tc.createEnvironment(t, "adapter-env")

	cmd := newShowPathCommand(tc.commandContext)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("show-path failed: %v", err)
	}
	if got := strings.TrimSpace(tc.stdout.String()); got != path {
		t.Errorf("output = %q, want %q", got, path)
	}
}

func TestStatusReportsDaemonAndCookbooks(t *testing.T) {
	tc := newTestContext(t)
	tc.cookbooks = []cookbook.Cookbook{testsupport.NewFakeCookbook("git", "repo-a").WithPriority(10)}

	cmd := newStatusCommand(tc.commandContext)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("status failed: %v", err)
	}

	output := tc.stdout.String()
	if !strings.Contains(output, "Not running") {
		t.Errorf("expected daemon not-running line, got %q", output)
	}
	if !strings.Contains(output, "git") || !strings.Contains(output, "10") {
		t.Errorf("expected cookbook table, got %q", output)
	}
}
