package manifest

import (
	"fmt"

	"github.com/popcli/pop/internal/templates"
)

// Expected is what a generated manifest must agree with: the template the
// user asked for and the token parameters it was rendered with.
type Expected struct {
	Template templates.Template
	Token    Token
}

// Verify reports every field of m that disagrees with want. A schema-valid
// manifest can still describe a different project than the one requested.
func Verify(m *TemplateManifest, want Expected) []ValidationIssue {
	var issues []ValidationIssue
	mismatch := func(path string, got, expected any) {
		issues = append(issues, ValidationIssue{
			Path:    path,
			Message: fmt.Sprintf("got %v, want %v", got, expected),
			Keyword: "mismatch",
		})
	}

	if got, err := templates.Parse(m.Template); err != nil || got != want.Template {
		mismatch("/template", fmt.Sprintf("%q", m.Template), fmt.Sprintf("%q", want.Template.Alias()))
	}
	if m.Token.Symbol != want.Token.Symbol {
		mismatch("/token/symbol", fmt.Sprintf("%q", m.Token.Symbol), fmt.Sprintf("%q", want.Token.Symbol))
	}
	if m.Token.Decimals != want.Token.Decimals {
		mismatch("/token/decimals", m.Token.Decimals, want.Token.Decimals)
	}
	if m.Token.InitialEndowment != want.Token.InitialEndowment {
		mismatch("/token/initial_endowment", fmt.Sprintf("%q", m.Token.InitialEndowment), fmt.Sprintf("%q", want.Token.InitialEndowment))
	}
	return issues
}
