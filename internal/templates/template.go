// Package templates defines the closed set of project templates that
// "pop new parachain" can generate, along with the names and aliases users
// may type to select them.
package templates

import (
	"fmt"
	"strings"
)

// Template identifies one project template. The zero value is not a valid
// template; use Parse or one of the declared constants.
type Template int

const (
	Base Template = iota + 1
	Contracts
	FPT
)

// Default is the template used when none is requested.
const Default = Base

type info struct {
	name       string
	aliases    []string
	repository string
}

// table is the single source of truth mapping variants to their names.
// The first alias is the short code shown to users.
var table = map[Template]info{
	Base: {
		name:       "Base Parachain Template",
		aliases:    []string{"base"},
		repository: "https://github.com/r0gue-io/base-parachain",
	},
	Contracts: {
		name:       "Contracts Node Template",
		aliases:    []string{"cpt"},
		repository: "https://github.com/paritytech/substrate-contracts-node",
	},
	FPT: {
		name:       "Frontier Parachain Template",
		aliases:    []string{"fpt"},
		repository: "https://github.com/paritytech/frontier-parachain-template",
	},
}

// All returns every template in declaration order.
func All() []Template {
	return []Template{Base, Contracts, FPT}
}

// Parse resolves a canonical name or alias to a Template. Matching ignores
// case and surrounding whitespace.
func Parse(s string) (Template, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, t := range All() {
		in := table[t]
		if needle == strings.ToLower(in.name) {
			return t, nil
		}
		for _, a := range in.aliases {
			if needle == a {
				return t, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown template %q: valid options are %s", s, strings.Join(Names(), ", "))
}

// MustParse is like Parse but panics on unknown input. Intended for
// package-level defaults and tests.
func MustParse(s string) Template {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Names returns the short alias of every template, in declaration order.
func Names() []string {
	names := make([]string, 0, len(table))
	for _, t := range All() {
		names = append(names, t.Alias())
	}
	return names
}

// Valid reports whether t is one of the declared templates.
func (t Template) Valid() bool {
	_, ok := table[t]
	return ok
}

// String returns the canonical display name, e.g. "Base Parachain Template".
func (t Template) String() string {
	if in, ok := table[t]; ok {
		return in.name
	}
	return fmt.Sprintf("Template(%d)", int(t))
}

// Alias returns the short code used on the command line, e.g. "cpt".
func (t Template) Alias() string {
	if in, ok := table[t]; ok {
		return in.aliases[0]
	}
	return ""
}

// Aliases returns every short code accepted for t.
func (t Template) Aliases() []string {
	in, ok := table[t]
	if !ok {
		return nil
	}
	out := make([]string, len(in.aliases))
	copy(out, in.aliases)
	return out
}

// Repository returns the upstream git repository the template is published from.
func (t Template) Repository() string {
	return table[t].repository
}

// Set implements pflag.Value so an unknown --template fails flag parsing.
func (t *Template) Set(s string) error {
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Type implements pflag.Value.
func (t *Template) Type() string {
	return "template"
}

// MarshalText encodes the template as its alias.
func (t Template) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid template %d", int(t))
	}
	return []byte(t.Alias()), nil
}

// UnmarshalText accepts any name Parse accepts.
func (t *Template) UnmarshalText(b []byte) error {
	return t.Set(string(b))
}
