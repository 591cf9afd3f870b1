package manifest

// FileName is the manifest file expected at the root of a generated project.
const FileName = "template.yaml"

// TemplateManifest describes a generated project.
type TemplateManifest struct {
	Name        string `yaml:"name" json:"name"`
	Template    string `yaml:"template" json:"template"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Token       Token  `yaml:"token" json:"token"`
}

// Token holds the native token parameters baked into the chain spec.
type Token struct {
	Symbol           string `yaml:"symbol" json:"symbol"`
	Decimals         int    `yaml:"decimals" json:"decimals"`
	InitialEndowment string `yaml:"initial_endowment" json:"initial_endowment"`
}
