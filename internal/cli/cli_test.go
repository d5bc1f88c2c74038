package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/dshills/snapdiff/internal/config"
	"github.com/dshills/snapdiff/internal/gitctx"
)

// resetFlags resets all package-level flag variables to their defaults.
func resetFlags() {
	flagFormat = ""
	flagGitBin = ""
	flagLogLevel = ""
	flagLimit = 0
	commitsCmd.Flags().Lookup("limit").Changed = false
	flagRepo = "."
	flagRev = gitctx.HeadRevision
	flagRaw = false
	flagDataURL = false
}

// execute runs the root command with args against an isolated config
// directory and returns stdout, stderr, and the exit code.
func execute(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()
	resetFlags()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SNAPDIFF_LOG_LEVEL", "off")

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	code := Run()
	return stdout.String(), stderr.String(), code
}

// setupRepo creates a git repository with one committed image, test.png.
func setupRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Test User")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test User")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")

	run := func(args ...string) {
		cmd := exec.Command("git", append([]string{"-c", "commit.gpgsign=false"}, args...)...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	run("init", "-q")
	if err := os.WriteFile(filepath.Join(dir, "test.png"), []byte("first version"), 0o644); err != nil {
		t.Fatal(err)
	}
	run("add", "test.png")
	run("commit", "-q", "-m", "First commit")
	return dir
}

// --- buildOverrides tests ---

func TestBuildOverrides_NoFlags(t *testing.T) {
	resetFlags()
	m := buildOverrides()
	if len(m) != 0 {
		t.Errorf("buildOverrides() with no flags = %v, want empty map", m)
	}
}

func TestBuildOverrides_AllFlags(t *testing.T) {
	resetFlags()
	flagFormat = "json"
	flagGitBin = "/usr/local/bin/git"
	flagLogLevel = "debug"

	m := buildOverrides()

	expected := map[string]string{
		"format":   "json",
		"gitBin":   "/usr/local/bin/git",
		"logLevel": "debug",
	}
	if len(m) != len(expected) {
		t.Fatalf("buildOverrides() returned %d entries, want %d", len(m), len(expected))
	}
	for k, v := range expected {
		if m[k] != v {
			t.Errorf("buildOverrides()[%q] = %q, want %q", k, m[k], v)
		}
	}
}

func TestRepoArg(t *testing.T) {
	if got := repoArg(nil); got != "." {
		t.Errorf("repoArg(nil) = %q, want %q", got, ".")
	}
	if got := repoArg([]string{""}); got != "." {
		t.Errorf("repoArg(\"\") = %q, want %q", got, ".")
	}
	if got := repoArg([]string{"/tmp/repo"}); got != "/tmp/repo" {
		t.Errorf("repoArg = %q, want %q", got, "/tmp/repo")
	}
}

// --- version command tests ---

func TestVersionCmd(t *testing.T) {
	stdout, _, code := execute(t, "", "version")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(stdout, "snapdiff version "+version) {
		t.Errorf("stdout = %q, want version line", stdout)
	}
}

// --- validate command tests ---

func TestValidate_Repository(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	stdout, _, code := execute(t, "", "validate", dir)
	if code != ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(stdout, "git repository") || strings.Contains(stdout, "not a git repository") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestValidate_NotARepository(t *testing.T) {
	dir := t.TempDir()

	stdout, _, code := execute(t, "", "validate", "--format", "json", dir)
	if code != ExitNotRepository {
		t.Errorf("exit code = %d, want %d", code, ExitNotRepository)
	}
	var got struct {
		Path  string `json:"path"`
		Valid bool   `json:"valid"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if got.Valid || got.Path != dir {
		t.Errorf("validation = %+v", got)
	}
}

func TestValidate_MissingPath(t *testing.T) {
	_, stderr, code := execute(t, "", "validate", "/nonexistent/path/that/does/not/exist")
	if code != ExitRuntimeError {
		t.Errorf("exit code = %d, want %d", code, ExitRuntimeError)
	}
	if !strings.Contains(stderr, "PathNotFound") {
		t.Errorf("stderr = %q, want error kind", stderr)
	}
}

func TestInvalidFormat_IsUsageError(t *testing.T) {
	_, _, code := execute(t, "", "validate", "--format", "xml", t.TempDir())
	if code != ExitUsageError {
		t.Errorf("exit code = %d, want %d", code, ExitUsageError)
	}
}

// --- changes command tests ---

func TestChanges_CleanRepo(t *testing.T) {
	repo := setupRepo(t)

	stdout, _, code := execute(t, "", "changes", repo)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(stdout, "No changed images.") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestChanges_JSON(t *testing.T) {
	repo := setupRepo(t)
	if err := os.WriteFile(filepath.Join(repo, "test.png"), []byte("changed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(repo, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, code := execute(t, "", "changes", "--format", "json", repo)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	var files []gitctx.ChangedFile
	if err := json.Unmarshal([]byte(stdout), &files); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if len(files) != 1 || files[0].Path != "test.png" || files[0].Status != gitctx.StatusModified {
		t.Errorf("files = %+v", files)
	}
}

func TestChanges_SpawnFailure(t *testing.T) {
	_, stderr, code := execute(t, "", "changes", "--git-bin", "definitely-not-a-real-git-binary", t.TempDir())
	if code != ExitRuntimeError {
		t.Errorf("exit code = %d, want %d", code, ExitRuntimeError)
	}
	if !strings.Contains(stderr, "SpawnFailure") {
		t.Errorf("stderr = %q", stderr)
	}
}

// --- commits command tests ---

func TestCommits_JSON(t *testing.T) {
	repo := setupRepo(t)

	stdout, _, code := execute(t, "", "commits", "--format", "json", "--limit", "5", repo)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	var commits []gitctx.CommitInfo
	if err := json.Unmarshal([]byte(stdout), &commits); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if len(commits) != 1 || commits[0].Message != "First commit" {
		t.Errorf("commits = %+v", commits)
	}
}

func TestCommits_ZeroLimitListsNothing(t *testing.T) {
	repo := setupRepo(t)

	stdout, _, code := execute(t, "", "commits", "--format", "json", "--limit", "0", repo)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if strings.TrimSpace(stdout) != "[]" {
		t.Errorf("stdout = %q, want []", stdout)
	}
}

func TestCommits_DefaultLimitFromConfig(t *testing.T) {
	repo := setupRepo(t)

	stdout, _, code := execute(t, "", "commits", "--format", "json", repo)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	var commits []gitctx.CommitInfo
	if err := json.Unmarshal([]byte(stdout), &commits); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if len(commits) != 1 {
		t.Errorf("got %d commits, want 1", len(commits))
	}
}

func TestCommits_NegativeLimit(t *testing.T) {
	_, _, code := execute(t, "", "commits", "--limit=-1", t.TempDir())
	if code != ExitUsageError {
		t.Errorf("exit code = %d, want %d", code, ExitUsageError)
	}
}

// --- show command tests ---

func TestShow_Raw(t *testing.T) {
	repo := setupRepo(t)
	if err := os.WriteFile(filepath.Join(repo, "test.png"), []byte("uncommitted"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, code := execute(t, "", "show", "--repo", repo, "--raw", "test.png")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if stdout != "first version" {
		t.Errorf("stdout = %q, want committed content", stdout)
	}
}

func TestShow_DataURL(t *testing.T) {
	repo := setupRepo(t)

	stdout, _, code := execute(t, "", "show", "--repo", repo, "--data-url", "test.png")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.HasPrefix(stdout, "data:image/png;base64,") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestShow_FileNotAtRevision(t *testing.T) {
	repo := setupRepo(t)

	_, stderr, code := execute(t, "", "show", "--repo", repo, "missing.png")
	if code != ExitRuntimeError {
		t.Errorf("exit code = %d, want %d", code, ExitRuntimeError)
	}
	if !strings.Contains(stderr, "FileNotAtRevision") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestShow_ConflictingFlags(t *testing.T) {
	_, _, code := execute(t, "", "show", "--raw", "--data-url", "a.png")
	if code != ExitUsageError {
		t.Errorf("exit code = %d, want %d", code, ExitUsageError)
	}
}

func TestShow_MissingArg(t *testing.T) {
	_, _, code := execute(t, "", "show")
	if code != ExitUsageError {
		t.Errorf("exit code = %d, want %d", code, ExitUsageError)
	}
}

// --- serve command tests ---

func TestServe_AnswersRequests(t *testing.T) {
	dir := t.TempDir()
	stdin := `{"id":1,"command":"validate_git_repo","args":{"path":"` + dir + `"}}` + "\n" +
		`{"id":2,"command":"nope"}` + "\n"

	stdout, _, code := execute(t, stdin, "serve")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d response lines, want 2:\n%s", len(lines), stdout)
	}
	var first struct {
		ID     int  `json:"id"`
		OK     bool `json:"ok"`
		Result bool `json:"result"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if first.ID != 1 || !first.OK || first.Result {
		t.Errorf("first response = %+v", first)
	}
	if !strings.Contains(lines[1], `"kind":"BadRequest"`) {
		t.Errorf("second response = %s", lines[1])
	}
}

// --- config command tests ---

func TestConfigInit_CreatesFile(t *testing.T) {
	stdout, _, code := execute(t, "", "config", "init")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(stdout, "Config file created at") {
		t.Errorf("stdout = %q", stdout)
	}

	data, err := os.ReadFile(filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "snapdiff", "config.yaml"))
	if err != nil {
		t.Fatalf("cannot read config file: %v", err)
	}
	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("config file is not valid YAML: %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("config = %+v, want defaults", cfg)
	}
}

func TestConfigInit_AlreadyExists(t *testing.T) {
	_, _, code := execute(t, "", "config", "set", "gitBin", "/opt/git")
	if code != ExitSuccess {
		t.Fatalf("config set exit code = %d", code)
	}
	path, err := config.ConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	resetFlags()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"config", "init"})
	if code := Run(); code != ExitSuccess {
		t.Fatalf("config init exit code = %d", code)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Errorf("config init overwrote existing file: %q", after)
	}
	if !strings.Contains(stderr.String(), "already exists") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestConfigSet_UpdatesFile(t *testing.T) {
	stdout, _, code := execute(t, "", "config", "set", "commitLimit", "20")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(stdout, "Set commitLimit = 20") {
		t.Errorf("stdout = %q", stdout)
	}

	cfg, err := config.LoadFile()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CommitLimit != 20 {
		t.Errorf("commitLimit = %d, want 20", cfg.CommitLimit)
	}
	if cfg.GitBin != "git" {
		t.Errorf("gitBin = %q, want defaults preserved", cfg.GitBin)
	}
}

func TestConfigSet_InvalidKey(t *testing.T) {
	_, _, code := execute(t, "", "config", "set", "unknownKey", "value")
	if code != ExitUsageError {
		t.Errorf("exit code = %d, want %d", code, ExitUsageError)
	}
}

func TestConfigSet_InvalidValue(t *testing.T) {
	_, _, code := execute(t, "", "config", "set", "format", "sarif")
	if code != ExitUsageError {
		t.Errorf("exit code = %d, want %d", code, ExitUsageError)
	}
}

func TestConfigSet_MissingArgs(t *testing.T) {
	_, _, code := execute(t, "", "config", "set", "format")
	if code != ExitUsageError {
		t.Errorf("exit code = %d, want %d", code, ExitUsageError)
	}
}

func TestConfigShow_IncludesFlags(t *testing.T) {
	stdout, _, code := execute(t, "", "config", "show", "--format", "json")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	var cfg config.Config
	if err := yaml.Unmarshal([]byte(stdout), &cfg); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if cfg.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Format)
	}
	if cfg.LogLevel != "off" {
		t.Errorf("logLevel = %q, want env value", cfg.LogLevel)
	}
}

// --- exit code constants tests ---

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name string
		code int
		want int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitNotRepository", ExitNotRepository, 1},
		{"ExitUsageError", ExitUsageError, 2},
		{"ExitRuntimeError", ExitRuntimeError, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.want {
				t.Errorf("%s = %d, want %d", tt.name, tt.code, tt.want)
			}
		})
	}
}
