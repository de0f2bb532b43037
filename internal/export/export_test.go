package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/a3music/opmchat/internal/chat"
)

func testConversation() *Conversation {
	return &Conversation{
		ID:    "abc123",
		Title: "Sad songs",
		Messages: []chat.Message{
			{Content: "any sad OPM songs?", Sender: chat.SenderUser},
			{Content: "Try \"Migraine\" by Moonstar88.", Sender: chat.SenderBot},
		},
	}
}

func TestNewExporter(t *testing.T) {
	tests := []struct {
		format    string
		extension string
		wantErr   bool
	}{
		{"json", "json", false},
		{"yaml", "yaml", false},
		{"md", "md", false},
		{"markdown", "md", false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			e, err := NewExporter(tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewExporter(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if err == nil && e.Extension() != tt.extension {
				t.Errorf("Extension() = %q, want %q", e.Extension(), tt.extension)
			}
		})
	}
}

func TestJSONExporter(t *testing.T) {
	var buf bytes.Buffer
	e := &JSONExporter{}

	if err := e.Export(testConversation(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var got Conversation
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got.ID != "abc123" || len(got.Messages) != 2 {
		t.Errorf("round-trip lost data: %+v", got)
	}
}

func TestYAMLExporter(t *testing.T) {
	var buf bytes.Buffer
	e := &YAMLExporter{}

	if err := e.Export(testConversation(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var got Conversation
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if got.Title != "Sad songs" || len(got.Messages) != 2 {
		t.Errorf("round-trip lost data: %+v", got)
	}
}

func TestMarkdownExporter(t *testing.T) {
	var buf bytes.Buffer
	e := &MarkdownExporter{}

	if err := e.Export(testConversation(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"# Sad songs", "**You:**", "**Guide:**", "Moonstar88"} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdownExporter_EmptyTitle(t *testing.T) {
	var buf bytes.Buffer
	conv := testConversation()
	conv.Title = ""

	if err := (&MarkdownExporter{}).Export(conv, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "# abc123") {
		t.Error("empty title should fall back to the session id")
	}
}
