package cookbook_test

import (
	"context"
	"strings"
	"testing"

	"enwiro/internal/cookbook"
	"enwiro/internal/logging"
	"enwiro/internal/testsupport"
)

func TestCollectFormatsOutput(t *testing.T) {
	cookbooks := []cookbook.Cookbook{
		testsupport.NewFakeCookbook("git", "repo-a", "repo-b"),
	}
	output := cookbook.Collect(context.Background(), cookbooks, logging.NewNop())
	if output != "git: repo-a\ngit: repo-b\n" {
		t.Errorf("output = %q", output)
	}
}

func TestCollectIncludesDescription(t *testing.T) {
	fake := testsupport.NewFakeCookbook("github")
	fake.Recipes = []cookbook.Recipe{{Name: "owner/repo#42", Description: "Fix auth bug"}}

	output := cookbook.Collect(context.Background(), []cookbook.Cookbook{fake}, logging.NewNop())
	if output != "github: owner/repo#42\tFix auth bug\n" {
		t.Errorf("output = %q", output)
	}
}

func TestCollectOmitsTabWithoutDescription(t *testing.T) {
	cookbooks := []cookbook.Cookbook{testsupport.NewFakeCookbook("git", "repo-a")}
	output := cookbook.Collect(context.Background(), cookbooks, logging.NewNop())
	if strings.Contains(output, "\t") {
		t.Errorf("output should carry no tab, got %q", output)
	}
}

func TestCollectSortsByPriority(t *testing.T) {
	cookbooks := []cookbook.Cookbook{
		testsupport.NewFakeCookbook("github", "repo#42").WithPriority(30),
		testsupport.NewFakeCookbook("git", "my-repo").WithPriority(10),
	}
	output := cookbook.Collect(context.Background(), cookbooks, logging.NewNop())

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if lines[0] != "git: my-repo" {
		t.Errorf("lower priority number should come first, got %q", lines[0])
	}
	if lines[1] != "github: repo#42" {
		t.Errorf("lines[1] = %q", lines[1])
	}
}

func TestCollectTieBreaksByName(t *testing.T) {
	cookbooks := []cookbook.Cookbook{
		testsupport.NewFakeCookbook("npm", "pkg-x").WithPriority(20),
		testsupport.NewFakeCookbook("git", "repo-a").WithPriority(20),
	}
	output := cookbook.Collect(context.Background(), cookbooks, logging.NewNop())

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if lines[0] != "git: repo-a" || lines[1] != "npm: pkg-x" {
		t.Errorf("equal priorities should order alphabetically, got %v", lines)
	}
}

func TestCollectSkipsFailingCookbook(t *testing.T) {
	cookbooks := []cookbook.Cookbook{
		&testsupport.FailingCookbook{CookbookName: "broken"},
		testsupport.NewFakeCookbook("git", "repo-a"),
	}
	output := cookbook.Collect(context.Background(), cookbooks, logging.NewNop())
	if output != "git: repo-a\n" {
		t.Errorf("failing cookbook should be skipped, got %q", output)
	}
}

func TestCollectEmpty(t *testing.T) {
	if output := cookbook.Collect(context.Background(), nil, logging.NewNop()); output != "" {
		t.Errorf("output = %q, want empty", output)
	}
}

func TestParseLineRoundTrip(t *testing.T) {
	line := cookbook.FormatLine("github", cookbook.Recipe{Name: "owner/repo#42", Description: "Fix auth bug"})
	entry, ok := cookbook.ParseLine(line)
	if !ok {
		t.Fatalf("ParseLine rejected %q", line)
	}
	if entry.Cookbook != "github" || entry.Name != "owner/repo#42" || entry.Description != "Fix auth bug" {
		t.Errorf("entry = %+v", entry)
	}
}

func TestParseLineRejectsMalformed(t *testing.T) {
	for _, line := range []string{"", "no separator", ": missing-cookbook", "git: "} {
		if _, ok := cookbook.ParseLine(line); ok {
			t.Errorf("ParseLine accepted %q", line)
		}
	}
}

func TestFindInListing(t *testing.T) {
	content := "git: my-repo\ngithub: owner/repo#42\tFix auth bug\nvirtual: scratch\n"

	owner, ok := cookbook.FindInListing(content, "owner/repo#42")
	if !ok || owner != "github" {
		t.Errorf("FindInListing = %q, %v", owner, ok)
	}
	if _, ok := cookbook.FindInListing(content, "missing"); ok {
		t.Error("expected no match for unknown recipe")
	}
}
