// Package testsupport provides in-memory fakes shared by tests across
// packages.
package testsupport

import (
	"context"
	"errors"
	"fmt"

	"enwiro/internal/cookbook"
)

// FakeCookbook is an in-memory cookbook with fixed recipes and cook
// results.
type FakeCookbook struct {
	CookbookName     string
	CookbookPriority int
	Recipes          []cookbook.Recipe
	// CookResults maps recipe names to the paths Cook returns.
	CookResults map[string]string
}

// NewFakeCookbook builds a fake with default priority and recipes without
// descriptions.
func NewFakeCookbook(name string, recipeNames ...string) *FakeCookbook {
	recipes := make([]cookbook.Recipe, 0, len(recipeNames))
	for _, rn := range recipeNames {
		recipes = append(recipes, cookbook.Recipe{Name: rn})
	}
	return &FakeCookbook{
		CookbookName:     name,
		CookbookPriority: cookbook.DefaultPriority,
		Recipes:          recipes,
		CookResults:      map[string]string{},
	}
}

// WithPriority overrides the fake's priority and returns it for chaining.
func (f *FakeCookbook) WithPriority(priority int) *FakeCookbook {
	f.CookbookPriority = priority
	return f
}

func (f *FakeCookbook) Name() string  { return f.CookbookName }
func (f *FakeCookbook) Priority() int { return f.CookbookPriority }

func (f *FakeCookbook) ListRecipes(context.Context) ([]cookbook.Recipe, error) {
	return f.Recipes, nil
}

func (f *FakeCookbook) Cook(_ context.Context, name string) (string, error) {
	path, ok := f.CookResults[name]
	if !ok {
		return "", fmt.Errorf("unknown recipe %q", name)
	}
	return path, nil
}

// FailingCookbook fails every operation; it exercises the skip-on-error
// paths in aggregation.
type FailingCookbook struct {
	CookbookName string
}

func (f *FailingCookbook) Name() string  { return f.CookbookName }
func (f *FailingCookbook) Priority() int { return cookbook.DefaultPriority }

func (f *FailingCookbook) ListRecipes(context.Context) ([]cookbook.Recipe, error) {
	return nil, errors.New("cookbook exploded")
}

func (f *FailingCookbook) Cook(context.Context, string) (string, error) {
	return "", errors.New("cookbook exploded")
}

// RecordingNotifier captures notification messages instead of sending them.
type RecordingNotifier struct {
	Successes []string
	Errors    []string
}

func (n *RecordingNotifier) Success(_ context.Context, message string) error {
	n.Successes = append(n.Successes, message)
	return nil
}

func (n *RecordingNotifier) Error(_ context.Context, message string) error {
	n.Errors = append(n.Errors, message)
	return nil
}

// FakeAdapter returns a fixed active workspace and records activations.
type FakeAdapter struct {
	Active      string
	ActiveErr   error
	Activations []string
}

func (a *FakeAdapter) ActiveEnvironmentName(context.Context) (string, error) {
	if a.ActiveErr != nil {
		return "", a.ActiveErr
	}
	return a.Active, nil
}

func (a *FakeAdapter) Activate(_ context.Context, name string) error {
	a.Activations = append(a.Activations, name)
	return nil
}
