package generate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/popcli/pop/internal/log"
	"github.com/popcli/pop/internal/scaffold"
	"github.com/popcli/pop/internal/templates"
	"github.com/popcli/pop/internal/ui"
	"github.com/popcli/pop/internal/vcs"
)

// CommitMessage is the message of the single commit in a generated project.
const CommitMessage = "initialized parachain"

// Materializer writes a template's files into a destination directory.
type Materializer interface {
	Materialize(ctx context.Context, tmpl templates.Template, dest string, cfg scaffold.Config) (*scaffold.Result, error)
}

// Initializer turns a directory into a git repository with one commit.
type Initializer interface {
	Init(ctx context.Context, path, message string) error
}

// Request describes one "new parachain" invocation.
type Request struct {
	Name     string
	Template templates.Template
	Config   scaffold.Config
	// Path is the base directory; empty means the working directory.
	Path string
}

// Status is the terminal state of a run.
type Status int

const (
	StatusCreated Status = iota + 1
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Repository is the outcome of git initialization.
type Repository int

const (
	RepositoryNone Repository = iota
	RepositoryInitialized
	RepositoryIdentityMissing
	RepositoryFailed
)

func (r Repository) String() string {
	switch r {
	case RepositoryInitialized:
		return "initialized"
	case RepositoryIdentityMissing:
		return "identity-missing"
	case RepositoryFailed:
		return "failed"
	default:
		return "none"
	}
}

// Result summarizes a run.
type Result struct {
	Status      Status
	Destination string
	Version     string
	Files       []string
	Warnings    []string
	Repository  Repository
}

// Generator runs the workflow.
type Generator struct {
	materializer Materializer
	initializer  Initializer
	notifier     ui.Notifier
	logger       *slog.Logger
}

// New creates a Generator. A nil logger discards log output.
func New(m Materializer, i Initializer, n ui.Notifier, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = log.Discard()
	}
	return &Generator{
		materializer: m,
		initializer:  i,
		notifier:     n,
		logger:       logger,
	}
}

// Destination joins the base path and the project name. Without a base path
// the name is used as is, relative to the working directory.
func Destination(name, path string) string {
	if path == "" {
		return name
	}
	return filepath.Join(path, name)
}

// Execute runs the workflow for req. A declined removal is not an error: the
// result has StatusCancelled and nothing on disk has changed.
func (g *Generator) Execute(ctx context.Context, req Request) (*Result, error) {
	dest := Destination(req.Name, req.Path)
	logger := g.logger.With(
		log.ProjectKey, req.Name,
		log.TemplateKey, req.Template.Alias(),
		log.DestinationKey, dest,
	)
	result := &Result{Destination: dest}

	g.notifier.Intro(fmt.Sprintf("Generating %q using %s!", req.Name, req.Template))
	logger.Debug("destination resolved")

	if _, err := os.Lstat(dest); err == nil {
		remove, err := g.notifier.Confirm(ctx, fmt.Sprintf("%q directory already exists. Would you like to remove it?", dest))
		if err != nil {
			return nil, fmt.Errorf("confirming removal of %s: %w", dest, err)
		}
		if !remove {
			g.notifier.Cancel(fmt.Sprintf("Cannot generate parachain until %q directory is removed.", dest))
			logger.Debug("generation cancelled")
			result.Status = StatusCancelled
			return result, nil
		}
		if err := os.RemoveAll(dest); err != nil {
			return nil, fmt.Errorf("removing existing directory %s: %w", dest, err)
		}
		logger.Debug("existing directory removed")
	}

	g.notifier.StartProgress("Generating parachain...")
	out, err := g.materializer.Materialize(ctx, req.Template, dest, req.Config)
	if err != nil {
		g.notifier.StopProgress("Generation failed")
		return nil, fmt.Errorf("generating %s template: %w", req.Template.Alias(), err)
	}
	if out == nil {
		out = &scaffold.Result{OutputDir: dest}
	}
	result.Version = out.Version
	result.Files = out.Files
	result.Warnings = out.Warnings
	for _, w := range out.Warnings {
		g.notifier.Warn(w)
	}
	logger.Debug("template materialized", log.VersionKey, out.Version, "files", len(out.Files))

	result.Repository = g.initRepository(ctx, dest, logger)

	g.notifier.StopProgress("Generation complete")
	if result.Version != "" {
		g.notifier.Info("Version: " + result.Version)
	}
	g.notifier.Success(fmt.Sprintf("cd into %q and enjoy hacking! 🚀", dest))

	result.Status = StatusCreated
	return result, nil
}

// initRepository never fails the run. A missing identity gets guidance;
// anything else is reported with the underlying error.
func (g *Generator) initRepository(ctx context.Context, dest string, logger *slog.Logger) Repository {
	err := g.initializer.Init(ctx, dest, CommitMessage)
	switch {
	case err == nil:
		logger.Debug("git repository initialized")
		return RepositoryInitialized
	case vcs.IsIdentityMissing(err):
		g.notifier.Warn("git signature could not be found. Please configure your git config with your name and email")
		logger.Debug("git identity missing")
		return RepositoryIdentityMissing
	default:
		class, code := vcs.Classify(err)
		g.notifier.Warn("git repository could not be initialized: " + err.Error())
		logger.Warn("git initialization failed", log.ErrorKey, err, "class", class.String(), "code", code.String())
		return RepositoryFailed
	}
}
