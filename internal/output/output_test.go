package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/winium-desktop/internal/model"
)

func sampleInspect() InspectResult {
	return InspectResult{
		App:    "notepad",
		Target: "Menu",
		Elements: []model.FlatElement{
			{ID: 1, Label: "File", Type: model.TypeMenuItem, XPath: "/*[@Name='File']", Path: "Menu > File"},
		},
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, sampleInspect()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "type: MenuItem") {
		t.Errorf("element type should render by name:\n%s", out)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded["app"] != "notepad" {
		t.Errorf("app: got %v", decoded["app"])
	}
	if _, ok := decoded["session"]; ok {
		t.Error("empty session should be omitted")
	}
}

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		pretty    bool
		multiline bool
	}{
		{false, false},
		{true, true},
	}
	for _, tt := range tests {
		PrettyOutput = tt.pretty
		var buf bytes.Buffer
		if err := Write(&buf, FormatJSON, sampleInspect()); err != nil {
			t.Fatal(err)
		}
		if got := strings.Count(buf.String(), "\n") > 1; got != tt.multiline {
			t.Errorf("pretty=%v: multiline=%v\n%s", tt.pretty, got, buf.String())
		}
		var decoded InspectResult
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(decoded.Elements) != 1 || decoded.Elements[0].Path != "Menu > File" {
			t.Errorf("decoded = %+v", decoded)
		} else if decoded.Elements[0].Type != model.TypeMenuItem {
			t.Errorf("decoded type = %v, want MenuItem", decoded.Elements[0].Type)
		}
	}
	PrettyOutput = false
}

func TestWriteJSON_NoHTMLEscape(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, DialogResult{Target: "a", Body: "<b> & co"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<b> & co") {
		t.Errorf("got %s", buf.String())
	}
}

func TestPrintUsesGlobals(t *testing.T) {
	var buf bytes.Buffer
	oldOut, oldFormat := Stdout, OutputFormat
	Stdout, OutputFormat = &buf, FormatJSON
	defer func() { Stdout, OutputFormat = oldOut, oldFormat }()

	if err := Print(DialogResult{OK: true, Target: "Confirm"}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("got %q, want JSON", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"": FormatYAML, "yaml": FormatYAML, " JSON ": FormatJSON}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
	if err := Write(&bytes.Buffer{}, Format("xml"), 1); err == nil {
		t.Error("expected error writing xml")
	}
}
