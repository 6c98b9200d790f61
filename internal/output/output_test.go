package output

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

type stringer struct{}

func (stringer) String() string { return "rendered" }

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWriterFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		value  interface{}
		want   string
	}{
		{"json", FormatJSON, sample{Name: "rau", Count: 2}, "{\n  \"name\": \"rau\",\n  \"count\": 2\n}\n"},
		{"yaml", FormatYAML, sample{Name: "rau", Count: 2}, "name: rau\ncount: 2\n"},
		{"text stringer", FormatText, stringer{}, "rendered\n"},
		{"text struct", FormatText, sample{Name: "rau", Count: 2}, "{Name:rau Count:2}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewWriter(&buf, tt.format).Write(tt.value); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Write() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriterYAMLNested(t *testing.T) {
	var buf bytes.Buffer
	v := map[string]any{"update": map[string]any{"mode": "notify"}}
	if err := NewWriter(&buf, FormatYAML).Write(v); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(buf.String(), "update:\n  mode: notify") {
		t.Errorf("unexpected yaml: %q", buf.String())
	}
}
