package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/popcli/pop/internal/release"
	"github.com/popcli/pop/internal/templates"
)

// tmpPattern names the private directory a template is cloned into.
const tmpPattern = "pop-template-*"

// excludedNames are never copied from a cloned template into the project.
var excludedNames = map[string]bool{
	".git":      true,
	".DS_Store": true,
}

// Remote materializes a template from its upstream git repository, checked
// out at the highest semver release tag.
type Remote struct {
	repositoryURL func(templates.Template) string
	progress      io.Writer
}

// RemoteOption configures a Remote.
type RemoteOption func(*Remote)

// WithRepositoryURL overrides where each template is cloned from.
func WithRepositoryURL(fn func(templates.Template) string) RemoteOption {
	return func(r *Remote) { r.repositoryURL = fn }
}

// WithCloneProgress streams git's sideband progress to w.
func WithCloneProgress(w io.Writer) RemoteOption {
	return func(r *Remote) { r.progress = w }
}

// NewRemote returns a materializer that clones Template.Repository().
func NewRemote(opts ...RemoteOption) *Remote {
	r := &Remote{
		repositoryURL: templates.Template.Repository,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Materialize clones the template into a fresh temporary directory, checks
// out its latest release, and copies the working tree into dest without git
// metadata. Nothing outside dest and that directory is touched; the clone is
// always removed.
func (r *Remote) Materialize(ctx context.Context, tmpl templates.Template, dest string, cfg Config) (*Result, error) {
	if !tmpl.Valid() {
		return nil, fmt.Errorf("invalid template %d", int(tmpl))
	}
	url := r.repositoryURL(tmpl)

	tmpDir, err := os.MkdirTemp("", tmpPattern)
	if err != nil {
		return nil, fmt.Errorf("creating clone directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	repo, err := git.PlainCloneContext(ctx, tmpDir, false, &git.CloneOptions{
		URL:      url,
		Tags:     git.AllTags,
		Progress: r.progress,
	})
	if err != nil {
		return nil, fmt.Errorf("cloning %s: %w", url, err)
	}

	return materializeFromRepo(repo, tmpDir, dest, NewData(filepath.Base(dest), tmpl, cfg))
}

// materializeFromRepo checks out the latest release of repo (whose working
// tree is at workdir) and renders it into dest.
func materializeFromRepo(repo *git.Repository, workdir, dest string, data *Data) (*Result, error) {
	tag, err := checkoutLatestTag(repo)
	if err != nil {
		return nil, err
	}

	if err := prepareOutputDir(dest); err != nil {
		return nil, err
	}

	result := &Result{
		OutputDir: dest,
		Version:   tag,
	}
	if err := copyTree(workdir, dest, "", data, result); err != nil {
		return nil, fmt.Errorf("copying template into %s: %w", dest, err)
	}

	inspectManifest(result, data)
	return result, nil
}

// checkoutLatestTag moves the worktree to the highest semver tag and returns
// it. When the repository has no release tags the default branch is kept and
// the returned tag is empty.
func checkoutLatestTag(repo *git.Repository) (string, error) {
	iter, err := repo.Tags()
	if err != nil {
		return "", fmt.Errorf("listing tags: %w", err)
	}
	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("listing tags: %w", err)
	}

	tag, ok := release.Latest(names)
	if !ok {
		return "", nil
	}

	ref, err := repo.Tag(tag)
	if err != nil {
		return "", fmt.Errorf("resolving tag %s: %w", tag, err)
	}

	// Annotated tags point at a tag object; peel it to the commit.
	hash := ref.Hash()
	tagObj, err := repo.TagObject(hash)
	switch {
	case err == nil:
		commit, err := tagObj.Commit()
		if err != nil {
			return "", fmt.Errorf("resolving commit for tag %s: %w", tag, err)
		}
		hash = commit.Hash
	case !errors.Is(err, plumbing.ErrObjectNotFound):
		return "", fmt.Errorf("reading tag %s: %w", tag, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("opening worktree: %w", err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Hash: hash, Force: true}); err != nil {
		return "", fmt.Errorf("checking out %s: %w", tag, err)
	}
	return tag, nil
}

// copyTree recursively copies src/rel into dst/rel, rendering *.tmpl files
// and skipping excludedNames. Symlinks and other special files are skipped.
func copyTree(src, dst, rel string, data *Data, result *Result) error {
	entries, err := os.ReadDir(filepath.Join(src, filepath.FromSlash(rel)))
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if excludedNames[entry.Name()] {
			continue
		}
		childRel := entry.Name()
		if rel != "" {
			childRel = rel + "/" + entry.Name()
		}

		if entry.IsDir() {
			if err := os.MkdirAll(filepath.Join(dst, filepath.FromSlash(childRel)), 0755); err != nil {
				return err
			}
			if err := copyTree(src, dst, childRel, data, result); err != nil {
				return err
			}
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}

		srcPath := filepath.Join(src, filepath.FromSlash(childRel))
		content, err := os.ReadFile(srcPath)
		if err != nil {
			return err
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		outRel, err := writeRendered(dst, childRel, content, info.Mode().Perm(), data)
		if err != nil {
			return err
		}
		result.Files = append(result.Files, outRel)
	}

	return nil
}
