package vcs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// isolateGitConfig points HOME and XDG_CONFIG_HOME at an empty directory so
// the user's real global git identity is not picked up.
func isolateGitConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return home
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "project")
	if err := os.MkdirAll(filepath.Join(dir, "node"), 0755); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[workspace]\n"), 0644)
	os.WriteFile(filepath.Join(dir, "node", "main.rs"), []byte("fn main() {}\n"), 0644)
	return dir
}

func commitCount(t *testing.T, dir string) int {
	t.Helper()
	repo, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatalf("opening repository: %v", err)
	}
	iter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	n := 0
	iter.ForEach(func(_ *object.Commit) error {
		n++
		return nil
	})
	return n
}

func TestInitWithAuthor(t *testing.T) {
	isolateGitConfig(t)
	dir := writeProject(t)

	g := NewGit(WithAuthor("Dev", "dev@example.com"))
	if err := g.Init(context.Background(), dir, "initialized parachain"); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	if got := commitCount(t, dir); got != 1 {
		t.Fatalf("commit count = %d, want 1", got)
	}

	repo, _ := git.PlainOpen(dir)
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("Head() error: %v", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		t.Fatalf("CommitObject() error: %v", err)
	}
	if commit.Message != "initialized parachain" {
		t.Errorf("message = %q", commit.Message)
	}
	if commit.Author.Email != "dev@example.com" {
		t.Errorf("author = %v", commit.Author)
	}

	tree, err := commit.Tree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tree.File("node/main.rs"); err != nil {
		t.Errorf("node/main.rs not committed: %v", err)
	}
}

func TestInitReadsGlobalIdentity(t *testing.T) {
	home := isolateGitConfig(t)
	gitconfig := "[user]\n\tname = Global Dev\n\temail = global@example.com\n"
	if err := os.WriteFile(filepath.Join(home, ".gitconfig"), []byte(gitconfig), 0644); err != nil {
		t.Fatal(err)
	}
	dir := writeProject(t)

	if err := NewGit().Init(context.Background(), dir, "initialized parachain"); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if got := commitCount(t, dir); got != 1 {
		t.Errorf("commit count = %d, want 1", got)
	}
}

func TestInitIdentityMissing(t *testing.T) {
	isolateGitConfig(t)
	dir := writeProject(t)

	err := NewGit().Init(context.Background(), dir, "initialized parachain")
	if err == nil {
		t.Fatal("expected identity error")
	}
	if !IsIdentityMissing(err) {
		t.Fatalf("IsIdentityMissing(%v) = false", err)
	}
	if !errors.Is(err, ErrIdentityMissing) {
		t.Errorf("errors.Is(err, ErrIdentityMissing) = false")
	}
	class, code := Classify(err)
	if class != ClassConfig || code != CodeNotFound {
		t.Errorf("Classify() = (%v, %v), want (config, not found)", class, code)
	}
}

func TestInitAlreadyExists(t *testing.T) {
	isolateGitConfig(t)
	dir := writeProject(t)
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatal(err)
	}

	err := NewGit(WithAuthor("Dev", "dev@example.com")).Init(context.Background(), dir, "msg")
	class, code := Classify(err)
	if class != ClassRepository || code != CodeExists {
		t.Errorf("Classify(%v) = (%v, %v), want (repository, exists)", err, class, code)
	}
	if IsIdentityMissing(err) {
		t.Error("repository error must not be classified as identity missing")
	}
}

func TestInitCanceledContext(t *testing.T) {
	dir := writeProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewGit().Init(ctx, dir, "msg"); !errors.Is(err, context.Canceled) {
		t.Errorf("Init() error = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); !os.IsNotExist(err) {
		t.Errorf(".git should not exist, stat err = %v", err)
	}
}

func TestClassifyPlainError(t *testing.T) {
	class, code := Classify(errors.New("boom"))
	if class != ClassNone || code != CodeGeneric {
		t.Errorf("Classify() = (%v, %v), want (none, generic)", class, code)
	}
	if IsIdentityMissing(nil) {
		t.Error("IsIdentityMissing(nil) should be false")
	}
}

func TestErrorString(t *testing.T) {
	err := &Error{Op: "staging files", Class: ClassIndex, Err: errors.New("disk full")}
	if got := err.Error(); got != "staging files: disk full" {
		t.Errorf("Error() = %q", got)
	}
	if ClassConfig.String() != "config" || CodeNotFound.String() != "not found" {
		t.Error("unexpected String() values")
	}
}

func TestIdentity(t *testing.T) {
	home := isolateGitConfig(t)

	if _, _, err := Identity(); !IsIdentityMissing(err) {
		t.Fatalf("Identity() error = %v, want identity missing", err)
	}

	gitconfig := "[user]\n\tname = Dev\n\temail = dev@example.com\n"
	if err := os.WriteFile(filepath.Join(home, ".gitconfig"), []byte(gitconfig), 0644); err != nil {
		t.Fatal(err)
	}
	name, email, err := Identity()
	if err != nil {
		t.Fatalf("Identity() error: %v", err)
	}
	if name != "Dev" || email != "dev@example.com" {
		t.Errorf("Identity() = %q <%q>", name, email)
	}
}

func TestFillIdentity(t *testing.T) {
	tests := []struct {
		name                    string
		globalName, globalEmail string
		systemName, systemEmail string
		wantName, wantEmail     string
	}{
		{"global wins", "G", "g@example.com", "S", "s@example.com", "G", "g@example.com"},
		{"system fills both", "", "", "S", "s@example.com", "S", "s@example.com"},
		{"system fills email", "G", "", "S", "s@example.com", "G", "s@example.com"},
		{"nothing anywhere", "", "", "", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			global, system := config.NewConfig(), config.NewConfig()
			global.User.Name, global.User.Email = tt.globalName, tt.globalEmail
			system.User.Name, system.User.Email = tt.systemName, tt.systemEmail

			fillIdentity(global, system)
			if global.User.Name != tt.wantName || global.User.Email != tt.wantEmail {
				t.Errorf("identity = %q <%q>, want %q <%q>", global.User.Name, global.User.Email, tt.wantName, tt.wantEmail)
			}
		})
	}
}

// writeSystemConfig installs /etc/gitconfig for the test, skipping when one
// already exists or the file cannot be written.
func writeSystemConfig(t *testing.T, content string) {
	t.Helper()
	const path = "/etc/gitconfig"
	if _, err := os.Stat(path); err == nil {
		t.Skip("system git config already present")
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Skipf("cannot write system git config: %v", err)
	}
	t.Cleanup(func() { os.Remove(path) })
}

func TestSystemIdentity(t *testing.T) {
	isolateGitConfig(t)
	writeSystemConfig(t, "[user]\n\tname = System Dev\n\temail = system@example.com\n")

	name, email, err := Identity()
	if err != nil {
		t.Fatalf("Identity() error: %v", err)
	}
	if name != "System Dev" || email != "system@example.com" {
		t.Errorf("Identity() = %q <%q>", name, email)
	}

	dir := writeProject(t)
	if err := NewGit().Init(context.Background(), dir, "initialized parachain"); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if got := commitCount(t, dir); got != 1 {
		t.Errorf("commit count = %d, want 1", got)
	}
}
