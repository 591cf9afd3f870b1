package vcs

import (
	"context"
	"errors"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Git initializes repositories with go-git, so no git binary is required.
type Git struct {
	author *object.Signature
	now    func() time.Time
}

// Option configures Git.
type Option func(*Git)

// WithAuthor commits as name <email> instead of reading git config.
func WithAuthor(name, email string) Option {
	return func(g *Git) {
		g.author = &object.Signature{Name: name, Email: email}
	}
}

// NewGit creates a repository initializer.
func NewGit(opts ...Option) *Git {
	g := &Git{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Init creates a repository at path, stages every file, and records a single
// commit with message. Failures are returned as *Error.
func (g *Git) Init(ctx context.Context, path, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo, err := git.PlainInit(path, false)
	if err != nil {
		code := CodeGeneric
		if errors.Is(err, git.ErrRepositoryAlreadyExists) {
			code = CodeExists
		}
		return &Error{Op: "initializing repository", Class: ClassRepository, Code: code, Err: err}
	}

	wt, err := repo.Worktree()
	if err != nil {
		return &Error{Op: "opening worktree", Class: ClassRepository, Err: err}
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return &Error{Op: "staging files", Class: ClassIndex, Err: err}
	}

	author, err := g.signature(repo)
	if err != nil {
		return err
	}

	if _, err := wt.Commit(message, &git.CommitOptions{Author: author}); err != nil {
		return &Error{Op: "creating initial commit", Class: ClassObject, Err: err}
	}
	return nil
}

// signature resolves the commit author: the configured override, else
// user.name and user.email from the repository's local, global, and system config.
func (g *Git) signature(repo *git.Repository) (*object.Signature, error) {
	if g.author != nil {
		sig := *g.author
		sig.When = g.now()
		return &sig, nil
	}

	cfg, err := repo.ConfigScoped(config.SystemScope)
	if err != nil {
		return nil, &Error{Op: "reading git config", Class: ClassConfig, Err: err}
	}
	if cfg.User.Name == "" || cfg.User.Email == "" {
		return nil, errIdentity()
	}
	return &object.Signature{Name: cfg.User.Name, Email: cfg.User.Email, When: g.now()}, nil
}

// Identity returns user.name and user.email from the global git config,
// falling back to the system config for whichever is unset. A missing value
// is reported like a commit would report it.
func Identity() (name, email string, err error) {
	cfg, err := userConfig()
	if err != nil {
		return "", "", &Error{Op: "reading git config", Class: ClassConfig, Err: err}
	}
	if cfg.User.Name == "" || cfg.User.Email == "" {
		return cfg.User.Name, cfg.User.Email, errIdentity()
	}
	return cfg.User.Name, cfg.User.Email, nil
}

func userConfig() (*config.Config, error) {
	global, err := config.LoadConfig(config.GlobalScope)
	if err != nil {
		return nil, err
	}
	system, err := config.LoadConfig(config.SystemScope)
	if err != nil {
		return nil, err
	}
	fillIdentity(global, system)
	return global, nil
}

// fillIdentity copies user.name and user.email from src where dst has none.
func fillIdentity(dst, src *config.Config) {
	if dst.User.Name == "" {
		dst.User.Name = src.User.Name
	}
	if dst.User.Email == "" {
		dst.User.Email = src.User.Email
	}
}

func errIdentity() *Error {
	return &Error{
		Op:    "resolving commit signature",
		Class: ClassConfig,
		Code:  CodeNotFound,
		Err:   ErrIdentityMissing,
	}
}
