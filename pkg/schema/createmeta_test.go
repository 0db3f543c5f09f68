package schema

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-itemform/pkg/model"
)

func loadFixture(t *testing.T, name string) Document {
	t.Helper()

	doc, err := NewLoader().Load(context.Background(), SourceFromFile("testdata/"+name))
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return doc
}

func TestDecodeCreateMeta_FieldsArray(t *testing.T) {
	doc := loadFixture(t, "createmeta_array.json")

	got, err := DecodeCreateMeta(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := []model.FieldDescriptor{
		{
			FieldID:       "project",
			Name:          "Project",
			Required:      true,
			AllowedValues: []model.AllowedValue{{ID: "10000", Label: "Demo"}},
		},
		{FieldID: "summary", Name: "Summary", Required: true},
		{
			FieldID: "priority",
			Name:    "Priority",
			AllowedValues: []model.AllowedValue{
				{ID: "1", Label: "Highest"},
				{ID: "3", Label: "Medium"},
				{ID: "5", Label: "Lowest"},
			},
		},
		{
			FieldID: "customfield_10020",
			Name:    "Sprint",
			AllowedValues: []model.AllowedValue{
				{ID: "10", Label: "Sprint 10"},
				{ID: "11", Label: "Sprint 11"},
			},
		},
		{FieldID: "duedate", Name: "Due Date"},
		{
			FieldID:  "customfield_10050",
			Name:     "Environment",
			Required: true,
			AllowedValues: []model.AllowedValue{
				{ID: "20001", Label: "Staging"},
				{ID: "20002", Label: "Production"},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("descriptors mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCreateMeta_KeyedMapKeepsDocumentOrder(t *testing.T) {
	doc := loadFixture(t, "createmeta_keyed.yaml")

	got, err := DecodeCreateMeta(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	var ids []string
	for _, desc := range got {
		ids = append(ids, desc.FieldID)
	}
	if diff := cmp.Diff([]string{"sprint", "priority", "project", "duedate"}, ids); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	wantSprint := []model.AllowedValue{{ID: "2", Label: "Sprint 2"}, {ID: "1", Label: "Sprint 1"}}
	if diff := cmp.Diff(wantSprint, got[0].AllowedValues); diff != "" {
		t.Fatalf("sprint values mismatch (-want +got):\n%s", diff)
	}
	if got[3].AllowedValues != nil {
		t.Fatalf("expected duedate to have no allowed values, got %#v", got[3].AllowedValues)
	}
}

func TestDecodeCreateMeta_Shapes(t *testing.T) {
	cases := []struct {
		name   string
		source string
		raw    string
		want   []model.FieldDescriptor
	}{
		{
			name:   "bare array",
			source: "meta.json",
			raw:    `[{"fieldId":"labels","name":"Labels","required":false}]`,
			want:   []model.FieldDescriptor{{FieldID: "labels", Name: "Labels"}},
		},
		{
			name:   "values array",
			source: "meta.json",
			raw:    `{"values":[{"fieldId":"sprint","name":"Sprint","allowedValues":[]}]}`,
			want:   []model.FieldDescriptor{{FieldID: "sprint", Name: "Sprint"}},
		},
		{
			name:   "key fallback",
			source: "payload",
			raw:    `{"fields":[{"key":"duedate","name":"Due Date"}]}`,
			want:   []model.FieldDescriptor{{FieldID: "duedate", Name: "Due Date"}},
		},
		{
			name:   "label fallback",
			source: "meta.yaml",
			raw:    "- fieldId: team\n  name: Team\n  allowedValues:\n    - id: a\n      label: Alpha\n",
			want: []model.FieldDescriptor{{
				FieldID:       "team",
				Name:          "Team",
				AllowedValues: []model.AllowedValue{{ID: "a", Label: "Alpha"}},
			}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := MustNewDocument(SourceFromMemory(tc.source), []byte(tc.raw))
			got, err := DecodeCreateMeta(doc)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("descriptors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeCreateMeta_Errors(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		raw     string
		options []DecodeOption
		expect  string
	}{
		{name: "invalid json", source: "meta.json", raw: `{"fields": [`, expect: "invalid JSON"},
		{name: "no fields", source: "meta.json", raw: `{"total": 0}`, expect: `"fields" or "values"`},
		{name: "scalar fields", source: "meta.yaml", raw: "fields: nope\n", expect: "list or a map"},
		{name: "scalar root", source: "meta.yaml", raw: "just text\n", expect: "top level"},
		{name: "forced json", source: "meta.yaml", raw: "fields: []\n", options: []DecodeOption{WithFormat(FormatJSON)}, expect: "invalid JSON"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := MustNewDocument(SourceFromMemory(tc.source), []byte(tc.raw))
			_, err := DecodeCreateMeta(doc, tc.options...)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.expect) {
				t.Fatalf("expected %q in %q", tc.expect, err.Error())
			}
		})
	}
}

func TestDecodeCreateMeta_LabelSanitizer(t *testing.T) {
	raw := `[{"fieldId":"priority","name":"<b>Priority</b>","allowedValues":[{"id":"1","name":"<script>alert(1)</script>High &amp; Urgent"}]}]`
	doc := MustNewDocument(SourceFromMemory("meta.json"), []byte(raw))

	verbatim, err := DecodeCreateMeta(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if verbatim[0].Name != "<b>Priority</b>" {
		t.Fatalf("expected labels untouched without sanitizer, got %q", verbatim[0].Name)
	}

	cleaned, err := DecodeCreateMeta(doc, WithLabelSanitizer())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cleaned[0].Name != "Priority" {
		t.Fatalf("expected sanitized name, got %q", cleaned[0].Name)
	}
	if got := cleaned[0].AllowedValues[0].Label; got != "High & Urgent" {
		t.Fatalf("expected sanitized option label, got %q", got)
	}
}

func TestLoader(t *testing.T) {
	files := fstest.MapFS{
		"schemas/meta.json":  &fstest.MapFile{Data: []byte(`[{"fieldId":"labels","name":"Labels"}]`)},
		"schemas/empty.json": &fstest.MapFile{Data: []byte("  \n")},
	}
	loader := NewLoader(WithFileSystem(files))

	doc, err := loader.Load(context.Background(), SourceFromFS("schemas/meta.json"))
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if doc.Source().Kind() != SourceKindFS || doc.Location() != "schemas/meta.json" {
		t.Fatalf("unexpected source %#v", doc.Source())
	}
	if doc.DetectFormat() != FormatJSON {
		t.Fatalf("expected json format")
	}

	if _, err := loader.Load(context.Background(), SourceFromFS("schemas/empty.json")); err == nil {
		t.Fatalf("expected empty document error")
	}
	if _, err := loader.Load(context.Background(), SourceFromFS("schemas/missing.json")); err == nil {
		t.Fatalf("expected missing file error")
	}
	if _, err := NewLoader().Load(context.Background(), SourceFromFS("schemas/meta.json")); err == nil {
		t.Fatalf("expected nil fs error")
	}
	if _, err := loader.Load(context.Background(), SourceFromMemory("inline")); !errors.Is(err, ErrUnsupportedSource) {
		t.Fatalf("expected ErrUnsupportedSource, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := loader.Load(ctx, SourceFromFile("testdata/createmeta_array.json")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]Format{"": FormatAuto, "AUTO": FormatAuto, "json": FormatJSON, "yml": FormatYAML, " yaml ": FormatYAML} {
		got, err := ParseFormat(raw)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"dueDate":      "Due Date",
		"fix_versions": "Fix Versions",
		"sprint":       "Sprint",
		"story-points": "Story Points",
		"":             "",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}
