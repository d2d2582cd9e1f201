package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo/internal/auth"
	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// testEnv isolates a dispatcher run: its own work dir, config dir and no
// environment overrides.
type testEnv struct {
	workDir   string
	configDir string
	storePath string
}

func newTestEnv(t *testing.T, content string) testEnv {
	t.Helper()
	t.Setenv(config.EnvStoreFile, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvRemoteList, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	workDir := t.TempDir()
	return testEnv{
		workDir:   workDir,
		configDir: t.TempDir(),
		storePath: testutil.WriteStore(t, workDir, content),
	}
}

func (e testEnv) run(t *testing.T, factory cli.ServiceFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	// Common flags go after the command name.
	if len(args) > 0 {
		args = append([]string{args[0], "--config", e.configDir}, args[1:]...)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory, e.workDir)
	var outBuf, errBuf bytes.Buffer
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	env := newTestEnv(t, "[ ] a\n[*] b\n")
	t.Setenv(config.EnvStoreFile, env.storePath)

	stdout, stderr, code := env.run(t, nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "1 a\n2 b\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestDispatcher_UnknownCommandPrintsHelp(t *testing.T) {
	env := newTestEnv(t, "")

	for _, args := range [][]string{{"unknowncmd"}, {"--quiet"}} {
		dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil, env.workDir)
		var stdout, stderr bytes.Buffer
		code := dispatcher.Run(context.Background(), args, &stdout, &stderr)

		if code != exitcode.Success {
			t.Errorf("%v: expected exit code %d, got %d", args, exitcode.Success, code)
		}
		if stdout.String() != commands.HelpText {
			t.Errorf("%v: expected help text, got %q", args, stdout.String())
		}
	}
}

func TestDispatcher_HelpAliases(t *testing.T) {
	env := newTestEnv(t, "")

	for _, name := range []string{"help", "--help", "-h"} {
		stdout, stderr, code := env.run(t, nil, name)

		if code != exitcode.Success {
			t.Errorf("%s: expected exit code %d, got %d", name, exitcode.Success, code)
		}
		if stderr != "" {
			t.Errorf("%s: expected no stderr, got %q", name, stderr)
		}
		if !strings.HasPrefix(stdout, "Usage:") {
			t.Errorf("%s: expected help output, got %q", name, stdout)
		}
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	env := newTestEnv(t, "")

	stdout, stderr, code := env.run(t, nil, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected 'todo 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	env := newTestEnv(t, "")

	_, stderr, code := env.run(t, nil, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	env := newTestEnv(t, "")

	_, stderr, code := env.run(t, nil, "list", "--file")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: flag needs an argument: -file\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_DefaultStorePath(t *testing.T) {
	env := newTestEnv(t, "")

	if _, _, code := env.run(t, nil, "add", "first"); code != exitcode.Success {
		t.Fatalf("add failed with %d", code)
	}

	want := filepath.Join(env.workDir, "data", "todo.txt")
	if env.storePath != want {
		t.Fatalf("test store at %s, want %s", env.storePath, want)
	}
	if got := testutil.ReadStore(t, want); got != "[ ] first\n" {
		t.Errorf("unexpected store %q", got)
	}
}

func TestDispatcher_FileFlag(t *testing.T) {
	env := newTestEnv(t, "")

	stdout, _, code := env.run(t, nil, "add", "--file", "other.txt", "x, y")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "1 x\n2 y\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	if got := testutil.ReadStore(t, filepath.Join(env.workDir, "other.txt")); got != "[ ] x\n[ ] y\n" {
		t.Errorf("unexpected store %q", got)
	}
	if got := testutil.ReadStore(t, env.storePath); got != "" {
		t.Errorf("default store should be untouched, got %q", got)
	}
}

func TestDispatcher_ConfigFile(t *testing.T) {
	env := newTestEnv(t, "")
	toml := "store_path = \"tasks/list.txt\"\nlock = false\n"
	if err := os.WriteFile(filepath.Join(env.configDir, config.ConfigFile), []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}

	if _, stderr, code := env.run(t, nil, "add", "from config"); code != exitcode.Success {
		t.Fatalf("add failed with %d: %s", code, stderr)
	}

	path := filepath.Join(env.workDir, "tasks", "list.txt")
	if got := testutil.ReadStore(t, path); got != "[ ] from config\n" {
		t.Errorf("unexpected store %q", got)
	}
	if _, err := os.Stat(path + ".lock"); !os.IsNotExist(err) {
		t.Error("lock file should not exist with lock = false")
	}
}

func TestDispatcher_InvalidConfigFile(t *testing.T) {
	env := newTestEnv(t, "")
	if err := os.WriteFile(filepath.Join(env.configDir, config.ConfigFile), []byte("store_path = "), 0644); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := env.run(t, nil, "list")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, "error: loading config file") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	env := newTestEnv(t, "")

	stdout, stderr, code := env.run(t, nil, "list", "--debug")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "dispatching") {
		t.Errorf("expected debug log on stderr, got %q", stderr)
	}
}

func TestDispatcher_UserErrorExitCode(t *testing.T) {
	env := newTestEnv(t, "")

	stdout, stderr, code := env.run(t, nil, "done", "1")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.HasPrefix(stderr, "error: index is out of bounds") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_AuthCommandUsesFactory(t *testing.T) {
	env := newTestEnv(t, "")
	svc := testutil.NewFakeService()
	svc.AddList("work", "Work")

	stdout, stderr, code := env.run(t, testFactory(svc), "lists")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "My Tasks [default]\nWork\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestDispatcher_PushWithListFlag(t *testing.T) {
	env := newTestEnv(t, "[ ] a\n")
	svc := testutil.NewFakeService()
	svc.AddList("work", "Work")

	_, stderr, code := env.run(t, testFactory(svc), "push", "--list", "work", "--quiet")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if got := svc.Tasks("work"); len(got) != 1 || got[0].Title != "a" {
		t.Errorf("unexpected remote tasks %+v", got)
	}
}

func TestDispatcher_FactoryErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"not logged in", auth.ErrNotLoggedIn, exitcode.AuthError, "error: auth error: not logged in (run: todo login)\n"},
		{"backend", errors.New("dial tcp: refused"), exitcode.BackendError, "error: backend error: dial tcp: refused\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "")
			factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
				return nil, tt.err
			}

			_, stderr, code := env.run(t, factory, "pull")

			if code != tt.wantCode {
				t.Errorf("expected exit code %d, got %d", tt.wantCode, code)
			}
			if stderr != tt.wantErr {
				t.Errorf("expected %q, got %q", tt.wantErr, stderr)
			}
		})
	}
}

func TestDispatcher_NoFactory(t *testing.T) {
	env := newTestEnv(t, "")

	_, _, code := env.run(t, nil, "lists")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
}

func TestDispatcher_DoubleDashPassesDashText(t *testing.T) {
	env := newTestEnv(t, "")

	stdout, stderr, code := env.run(t, nil, "add", "--", "-5 apples")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "1 -5 apples\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	if got := testutil.ReadStore(t, env.storePath); got != "[ ] -5 apples\n" {
		t.Errorf("unexpected store %q", got)
	}
}

func TestDispatcher_DashTextWithoutDoubleDash(t *testing.T) {
	env := newTestEnv(t, "[ ] a\n")

	_, stderr, code := env.run(t, nil, "add", "-5 apples")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, "error: unknown flag") {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if got := testutil.ReadStore(t, env.storePath); got != "[ ] a\n" {
		t.Errorf("store should be unchanged, got %q", got)
	}
}

func TestDispatcher_NegativeIndexAfterDoubleDash(t *testing.T) {
	env := newTestEnv(t, "[ ] a\n")

	_, stderr, code := env.run(t, nil, "done", "--", "-1")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, "error: index must be a valid number") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_SplitCharacterIsStoreError(t *testing.T) {
	content := "[ ]é tea\n[ ] b\n"
	env := newTestEnv(t, content)

	_, stderr, code := env.run(t, nil, "done", "2")

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if !strings.Contains(stderr, "line 1: malformed line") {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if got := testutil.ReadStore(t, env.storePath); got != content {
		t.Errorf("store should be unchanged, got %q", got)
	}
}
