package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const schemaURL = "template.schema.json"

//go:embed schema/template.schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error

	// jsonschema renders its error kinds through an x/text printer.
	printer = message.NewPrinter(language.English)
)

// ValidationResult is the outcome of checking one manifest.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one problem found in a manifest.
type ValidationIssue struct {
	Path    string // JSON pointer into the manifest, e.g. "/token/decimals"; empty for the document
	Message string
	Keyword string // failing schema keyword, or "mismatch" for Verify
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("reading manifest schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("registering manifest schema: %w", err)
			return
		}
		if schema, err = c.Compile(schemaURL); err != nil {
			schemaErr = fmt.Errorf("compiling manifest schema: %w", err)
		}
	})
	return schema, schemaErr
}

// Validate checks manifest YAML against the template.yaml schema. The error
// return is reserved for unreadable input; schema violations are issues.
func Validate(data []byte) (*ValidationResult, error) {
	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	inst, err := instance(data)
	if err != nil {
		return nil, err
	}

	var ve *jsonschema.ValidationError
	switch err := sch.Validate(inst); {
	case err == nil:
		return &ValidationResult{Valid: true}, nil
	case errors.As(err, &ve):
		return &ValidationResult{Issues: schemaIssues(ve)}, nil
	default:
		return nil, fmt.Errorf("validating manifest: %w", err)
	}
}

// ValidateFile reads a file and validates it against the manifest schema.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

// instance decodes manifest YAML into the JSON value model the validator
// works on (json.Number for numbers).
func instance(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("manifest is not representable as JSON: %w", err)
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(raw))
}

// schemaIssues flattens the error tree to one issue per failing leaf.
func schemaIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	if len(ve.Causes) > 0 {
		var issues []ValidationIssue
		for _, cause := range ve.Causes {
			issues = append(issues, schemaIssues(cause)...)
		}
		return issues
	}

	issue := ValidationIssue{Message: ve.Error()}
	if len(ve.InstanceLocation) > 0 {
		issue.Path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	if ve.ErrorKind != nil {
		issue.Message = ve.ErrorKind.LocalizedString(printer)
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			issue.Keyword = kw[len(kw)-1]
		}
	}
	return []ValidationIssue{issue}
}
