package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"enwiro/internal/cookbook"
	"enwiro/internal/logging"
	"enwiro/internal/recipecache"
	"enwiro/internal/testsupport"
)

func cookedTarget(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "cooked-target")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestCookEnvironmentCreatesSymlink(t *testing.T) {
	tc := newTestContext(t)
	target := cookedTarget(t)

	fake := testsupport.NewFakeCookbook("git", "my-project")
	fake.CookResults["my-project"] = target
	tc.cookbooks = []cookbook.Cookbook{fake}

	env, err := tc.cookEnvironment(context.Background(), "my-project")
	if err != nil {
		t.Fatalf("cookEnvironment failed: %v", err)
	}
	if env.Name != "my-project" {
		t.Errorf("env.Name = %q", env.Name)
	}

	link := filepath.Join(tc.cfg.WorkspacesDirectory, "my-project")
	if info, err := os.Lstat(link); err != nil || info.Mode()&os.ModeSymlink == 0 {
		t.Errorf("expected symlink at %s", link)
	}
	if len(tc.notified.Successes) != 1 || !strings.Contains(tc.notified.Successes[0], "my-project") {
		t.Errorf("expected success notification, got %v", tc.notified.Successes)
	}
}

func TestCookEnvironmentFlattensSlashes(t *testing.T) {
	tc := newTestContext(t)
	target := cookedTarget(t)

	name := "my-project@feature/my-thing"
	fake := testsupport.NewFakeCookbook("git", name)
	fake.CookResults[name] = target
	tc.cookbooks = []cookbook.Cookbook{fake}

	env, err := tc.cookEnvironment(context.Background(), name)
	if err != nil {
		t.Fatalf("cookEnvironment failed: %v", err)
	}
	if env.Name != "my-project@feature-my-thing" {
		t.Errorf("env.Name = %q", env.Name)
	}
}

func TestCookEnvironmentUsesCacheToSkipSlowCookbooks(t *testing.T) {
	tc := newTestContext(t)
	target := cookedTarget(t)

	store := recipecache.NewStore(tc.runtimeDir, logging.NewNop())
	if err := store.WriteAtomic("git: my-project\n"); err != nil {
		t.Fatal(err)
	}

	fake := testsupport.NewFakeCookbook("git", "my-project")
	fake.CookResults["my-project"] = target
	tc.cookbooks = []cookbook.Cookbook{
		&testsupport.FailingCookbook{CookbookName: "github"},
		fake,
	}

	env, err := tc.cookEnvironment(context.Background(), "my-project")
	if err != nil {
		t.Fatalf("cache hit should avoid the failing cookbook: %v", err)
	}
	if env.Name != "my-project" {
		t.Errorf("env.Name = %q", env.Name)
	}
}

func TestCookEnvironmentFallsThroughWhenRecipeNotInCache(t *testing.T) {
	tc := newTestContext(t)
	target := cookedTarget(t)

	store := recipecache.NewStore(tc.runtimeDir, logging.NewNop())
	if err := store.WriteAtomic("git: other-project\n"); err != nil {
		t.Fatal(err)
	}

	fake := testsupport.NewFakeCookbook("git", "new-branch")
	fake.CookResults["new-branch"] = target
	tc.cookbooks = []cookbook.Cookbook{fake}

	env, err := tc.cookEnvironment(context.Background(), "new-branch")
	if err != nil {
		t.Fatalf("cookEnvironment failed: %v", err)
	}
	if env.Name != "new-branch" {
		t.Errorf("env.Name = %q", env.Name)
	}
}

func TestCookEnvironmentFallsThroughWhenCachedCookbookMissing(t *testing.T) {
	tc := newTestContext(t)
	target := cookedTarget(t)

	store := recipecache.NewStore(tc.runtimeDir, logging.NewNop())
	if err := store.WriteAtomic("npm: my-project\n"); err != nil {
		t.Fatal(err)
	}

	fake := testsupport.NewFakeCookbook("git", "my-project")
	fake.CookResults["my-project"] = target
	tc.cookbooks = []cookbook.Cookbook{fake}

	if _, err := tc.cookEnvironment(context.Background(), "my-project"); err != nil {
		t.Fatalf("should fall through to the slow path: %v", err)
	}
}

func TestCookEnvironmentErrorsWhenNoRecipeMatches(t *testing.T) {
	tc := newTestContext(t)
	tc.cookbooks = []cookbook.Cookbook{testsupport.NewFakeCookbook("git", "other-project")}

	_, err := tc.cookEnvironment(context.Background(), "my-project")
	if err == nil || !strings.Contains(err.Error(), "no recipe available") {
		t.Errorf("expected no-recipe error, got %v", err)
	}
	if len(tc.notified.Successes) != 0 {
		t.Errorf("no notification expected on failure, got %v", tc.notified.Successes)
	}
}

func TestGetOrCookReturnsExistingEnvironment(t *testing.T) {
	tc := newTestContext(t)
	tc.createEnvironment(t, "my-env")

	env, err := tc.getOrCookEnvironment(context.Background(), "my-env")
	if err != nil {
		t.Fatalf("getOrCookEnvironment failed: %v", err)
	}
	if env.Name != "my-env" {
		t.Errorf("env.Name = %q", env.Name)
	}
}

func TestGetOrCookCooksMissingEnvironment(t *testing.T) {
	tc := newTestContext(t)
	target := cookedTarget(t)

	fake := testsupport.NewFakeCookbook("git", "new-project")
	fake.CookResults["new-project"] = target
	tc.cookbooks = []cookbook.Cookbook{fake}

	env, err := tc.getOrCookEnvironment(context.Background(), "new-project")
	if err != nil {
		t.Fatalf("getOrCookEnvironment failed: %v", err)
	}
	if env.Name != "new-project" {
		t.Errorf("env.Name = %q", env.Name)
	}
}

func TestGetOrCookDoesNotCookAdapterDerivedNames(t *testing.T) {
	tc := newTestContext(t)
	// The adapter resolves to "adapter-env", which does not exist on disk.
	// Cooking must not be attempted; the failing cookbook would surface in
	// the error text if it were.
	tc.cookbooks = []cookbook.Cookbook{&testsupport.FailingCookbook{CookbookName: "github"}}

	_, err := tc.getOrCookEnvironment(context.Background(), "")
	if err == nil {
		t.Fatal("expected error for missing adapter-derived environment")
	}
	if strings.Contains(err.Error(), "exploded") {
		t.Errorf("cooking should not run for adapter names, got %v", err)
	}
}

func TestGetOrCookFindsExistingFlattenedName(t *testing.T) {
	tc := newTestContext(t)
	tc.createEnvironment(t, "my-project@feature-my-thing")

	env, err := tc.getOrCookEnvironment(context.Background(), "my-project@feature/my-thing")
	if err != nil {
		t.Fatalf("getOrCookEnvironment failed: %v", err)
	}
	if env.Name != "my-project@feature-my-thing" {
		t.Errorf("env.Name = %q", env.Name)
	}
}

func TestCookEnvironmentRecordsMetadata(t *testing.T) {
	tc := newTestContext(t)
	target := cookedTarget(t)

	fake := testsupport.NewFakeCookbook("github", "owner/repo#42")
	fake.CookResults["owner/repo#42"] = target
	tc.cookbooks = []cookbook.Cookbook{fake}

	if _, err := tc.cookEnvironment(context.Background(), "owner/repo#42"); err != nil {
		t.Fatal(err)
	}

	stats := tc.statsStore()
	if stats == nil {
		t.Fatal("stats store should be enabled in tests")
	}
	row, ok, err := stats.Get(context.Background(), "owner-repo#42")
	if err != nil || !ok {
		t.Fatalf("expected stats row: ok=%v err=%v", ok, err)
	}
	if row.Cookbook != "github" {
		t.Errorf("cookbook = %q, want github", row.Cookbook)
	}
}
