package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"enwiro/internal/config"
	"enwiro/internal/logging"
	"enwiro/internal/testsupport"
)

// testContext builds a commandContext wired with fakes: a buffer for
// stdout, a temp runtime directory (which also disables daemon spawning),
// a fake adapter, and a recording notifier.
type testContext struct {
	*commandContext
	cfg      *config.Config
	stdout   *bytes.Buffer
	adapter  *testsupport.FakeAdapter
	notified *testsupport.RecordingNotifier
}

func newTestContext(t *testing.T) *testContext {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	stdout := &bytes.Buffer{}
	fakeAdapter := &testsupport.FakeAdapter{Active: "adapter-env"}
	notifier := &testsupport.RecordingNotifier{}

	c := newCommandContext(nil)
	c.stdout = stdout
	c.runtimeDir = filepath.Join(t.TempDir(), "run")
	c.wmAdapter = fakeAdapter
	c.notifier = notifier
	c.cookbookSet = true
	c.configOnce.Do(func() { c.config = cfg })
	c.loggerOnce.Do(func() { c.logger = logging.NewNop() })
	t.Cleanup(c.closeStats)

	return &testContext{
		commandContext: c,
		cfg:            cfg,
		stdout:         stdout,
		adapter:        fakeAdapter,
		notified:       notifier,
	}
}

// createEnvironment materializes a plain directory environment in the test
// workspaces directory.
func (tc *testContext) createEnvironment(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(tc.cfg.WorkspacesDirectory, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("create environment %q: %v", name, err)
	}
	return path
}
