package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/winium-desktop/internal/model"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Stdout receives everything Print writes.
var Stdout io.Writer = os.Stdout

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatYAML, FormatJSON:
		return f, nil
	case "":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (use yaml or json)", s)
	}
}

// InspectResult is the output of the `inspect` command.
type InspectResult struct {
	App      string              `yaml:"app"                json:"app"`
	Session  string              `yaml:"session,omitempty"  json:"session,omitempty"`
	Target   string              `yaml:"target,omitempty"   json:"target,omitempty"`
	Elements []model.FlatElement `yaml:"elements"           json:"elements"`
	Changes  []model.Change      `yaml:"changes,omitempty"  json:"changes,omitempty"`
}

// DialogResult is the output of reading a dialog.
type DialogResult struct {
	OK      bool     `yaml:"ok"                json:"ok"`
	Target  string   `yaml:"target"            json:"target"`
	Title   string   `yaml:"title,omitempty"   json:"title,omitempty"`
	Body    string   `yaml:"body,omitempty"    json:"body,omitempty"`
	Buttons []string `yaml:"buttons,omitempty" json:"buttons,omitempty"`
	Message string   `yaml:"message,omitempty" json:"message,omitempty"`
}

// Print serializes v to Stdout in the current output format.
func Print(v interface{}) error {
	return Write(Stdout, OutputFormat, v)
}

// Write serializes v to w in format f.
func Write(w io.Writer, f Format, v interface{}) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, v, PrettyOutput)
	case FormatYAML:
		return writeYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", f)
	}
}

func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
