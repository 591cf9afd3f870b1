package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/popcli/pop/internal/config"
	"github.com/popcli/pop/internal/manifest"
	"github.com/popcli/pop/internal/vcs"
	"github.com/spf13/cobra"
)

var checkManifest string

// lookPath is replaced in tests.
var lookPath = exec.LookPath

func init() {
	doctorCmd.Flags().StringVar(&checkManifest, "check-manifest", "", "Validate a template.yaml manifest at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the environment can generate and build parachains",
	Long: `Run diagnostic checks on the local environment: required tools, the git
identity used for the initial commit of new projects, and the config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if checkManifest != "" {
			return runManifestCheck(out, checkManifest)
		}
		runToolsCheck(out)
		runIdentityCheck(out)
		runConfigCheck(out)
		return nil
	},
}

func runToolsCheck(w io.Writer) {
	fmt.Fprintln(w, "Tools check:")
	checkBinary(w, "git")
	checkBinary(w, "cargo")
	checkBinary(w, "rustup")
}

func checkBinary(w io.Writer, name string) {
	path, err := lookPath(name)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %s not found\n", name)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s found at %s\n", name, path)
}

func runIdentityCheck(w io.Writer) {
	fmt.Fprintln(w, "Git identity check:")
	name, email, err := vcs.Identity()
	switch {
	case err == nil:
		fmt.Fprintf(w, "  [ OK ] commits will be authored by %s <%s>\n", name, email)
	case vcs.IsIdentityMissing(err):
		fmt.Fprintln(w, "  [WARN] user.name or user.email is not set; new projects will have no initial commit")
		fmt.Fprintln(w, `         Run 'git config --global user.name "Your Name"' and 'git config --global user.email you@example.com'`)
	default:
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
	}
}

func runConfigCheck(w io.Writer) {
	fmt.Fprintln(w, "Config check:")
	path := config.FilePath()
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(w, "  [INFO] %s not created yet (defaults in use)\n", path)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s\n", path)
	for _, key := range []string{config.KeySymbol, config.KeyDecimals, config.KeyEndowment, config.KeyPath, config.KeySource} {
		if config.IsSet(key) {
			fmt.Fprintf(w, "         %s = %s\n", key, config.Get(key))
		}
	}
}

func runManifestCheck(w io.Writer, path string) error {
	fmt.Fprintf(w, "Manifest validation: %s\n", path)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	if result.Valid {
		m, err := manifest.Parse(path)
		if err != nil {
			fmt.Fprintln(w, "  [ OK ] Valid manifest")
			return nil
		}
		fmt.Fprintf(w, "  [ OK ] Valid %s manifest: %s (%s)\n", m.Template, m.Name, m.Version)
		return nil
	}

	fmt.Fprintf(w, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		if issue.Path != "" {
			fmt.Fprintf(w, "    - %s: %s\n", issue.Path, issue.Message)
		} else {
			fmt.Fprintf(w, "    - %s\n", issue.Message)
		}
	}
	return fmt.Errorf("manifest %s has %d validation issue(s)", path, len(result.Issues))
}
