package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/popcli/pop/internal/config"
	"github.com/popcli/pop/internal/generate"
	"github.com/popcli/pop/internal/log"
	"github.com/popcli/pop/internal/scaffold"
	"github.com/popcli/pop/internal/templates"
	"github.com/popcli/pop/internal/ui"
	"github.com/popcli/pop/internal/vcs"
	"github.com/spf13/cobra"
)

// Template sources accepted by --source.
const (
	sourceEmbedded = "embedded"
	sourceRemote   = "remote"
)

var (
	parachainTemplate  = templates.Default
	parachainSymbol    string
	parachainDecimals  uint8
	parachainEndowment string
	parachainPath      string
	parachainSource    string
	parachainYes       bool
)

// Collaborators of "new parachain", replaced in tests.
var (
	newNotifier = func(out io.Writer, assumeYes bool) ui.Notifier {
		return ui.NewTerminal(ui.WithOutput(out), ui.WithAssumeYes(assumeYes))
	}
	newMaterializer = materializerFor
	newInitializer  = func() generate.Initializer { return vcs.NewGit() }
)

func init() {
	f := newParachainCmd.Flags()
	f.VarP(&parachainTemplate, "template", "t", "Template to generate: "+strings.Join(templates.Names(), ", "))
	f.StringVarP(&parachainSymbol, "symbol", "s", scaffold.DefaultSymbol, "Token symbol")
	f.Uint8VarP(&parachainDecimals, "decimals", "d", scaffold.DefaultDecimals, "Token decimals (0-255)")
	f.StringVarP(&parachainEndowment, "endowment", "e", scaffold.DefaultInitialEndowment, "Initial endowment of development accounts")
	f.StringVarP(&parachainPath, "path", "p", "", "Base directory for the project (default: current directory)")
	f.StringVar(&parachainSource, "source", sourceEmbedded, "Template source: embedded or remote")
	f.BoolVarP(&parachainYes, "yes", "y", false, "Remove an existing destination without asking")

	newCmd.AddCommand(newParachainCmd)
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a new project",
}

var newParachainCmd = &cobra.Command{
	Use:   "parachain <name> [template]",
	Short: "Generate a new parachain project from a template",
	Long: `Generate a new parachain project from a template.

The project is written to <name>, or to <path>/<name> when --path is given.
An existing directory is only removed after confirmation (or with --yes).
The new project is initialized as a git repository with one commit.

Templates:
` + templateHelp() + `
Examples:
  pop new parachain my-chain
  pop new parachain my-chain cpt --symbol DOT --decimals 10
  pop new parachain my-chain -t fpt -p ~/projects --source remote`,
	Args:    parachainArgs,
	PreRunE: bindParachainFlags,
	RunE:    runNewParachain,
}

// parachainArgs rejects an unknown template before anything touches disk.
func parachainArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.RangeArgs(1, 2)(cmd, args); err != nil {
		return err
	}
	if strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("project name must not be empty")
	}
	if len(args) == 2 {
		if _, err := templates.Parse(args[1]); err != nil {
			return err
		}
	}
	return nil
}

func bindParachainFlags(cmd *cobra.Command, args []string) error {
	bindings := map[string]string{
		config.KeyTemplate:  "template",
		config.KeySymbol:    "symbol",
		config.KeyDecimals:  "decimals",
		config.KeyEndowment: "endowment",
		config.KeyPath:      "path",
		config.KeySource:    "source",
	}
	for key, name := range bindings {
		if err := config.BindFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

func runNewParachain(cmd *cobra.Command, args []string) error {
	tmpl, err := requestedTemplate(args)
	if err != nil {
		return err
	}

	cfg, err := scaffoldConfig()
	if err != nil {
		return err
	}

	var progress io.Writer
	if logger.Enabled(cmd.Context(), slog.LevelDebug) {
		progress = cmd.ErrOrStderr()
	}
	m, err := newMaterializer(config.Get(config.KeySource), progress)
	if err != nil {
		return err
	}

	req := generate.Request{
		Name:     args[0],
		Template: tmpl,
		Config:   cfg,
		Path:     config.Get(config.KeyPath),
	}
	logger.Debug("new parachain",
		log.ProjectKey, req.Name,
		log.TemplateKey, tmpl.Alias(),
		"symbol", cfg.Symbol,
		"decimals", cfg.Decimals,
	)

	g := generate.New(m, newInitializer(), newNotifier(cmd.OutOrStdout(), parachainYes), logger)
	res, err := g.Execute(cmd.Context(), req)
	if err != nil {
		return err
	}
	logger.Info("new parachain finished",
		log.DestinationKey, res.Destination,
		"status", res.Status.String(),
		"repository", res.Repository.String(),
	)
	return nil
}

// requestedTemplate prefers the positional template over new.template, which
// holds --template, POP_NEW_TEMPLATE, or the config file value.
func requestedTemplate(args []string) (templates.Template, error) {
	raw := config.Get(config.KeyTemplate)
	if len(args) == 2 {
		raw = args[1]
	}
	var tmpl templates.Template
	if err := tmpl.UnmarshalText([]byte(raw)); err != nil {
		return 0, err
	}
	return tmpl, nil
}

// scaffoldConfig reads the token settings, already merged from flags,
// environment, and config file.
func scaffoldConfig() (scaffold.Config, error) {
	raw := config.Get(config.KeyDecimals)
	decimals, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return scaffold.Config{}, fmt.Errorf("invalid decimals %q: must be an integer between 0 and 255", raw)
	}
	return scaffold.Config{
		Symbol:           config.Get(config.KeySymbol),
		Decimals:         uint8(decimals),
		InitialEndowment: config.Get(config.KeyEndowment),
	}, nil
}

// materializerFor picks the template source. progress receives git clone
// output for remote templates; nil keeps the clone quiet.
func materializerFor(source string, progress io.Writer) (generate.Materializer, error) {
	switch strings.ToLower(source) {
	case "", sourceEmbedded:
		return scaffold.NewEmbedded(), nil
	case sourceRemote:
		return scaffold.NewRemote(scaffold.WithCloneProgress(progress)), nil
	default:
		return nil, fmt.Errorf("unknown template source %q: valid options are %s, %s", source, sourceEmbedded, sourceRemote)
	}
}

func templateHelp() string {
	var b strings.Builder
	for _, t := range templates.All() {
		fmt.Fprintf(&b, "  %-6s %s\n", t.Alias(), t)
	}
	return b.String()
}
