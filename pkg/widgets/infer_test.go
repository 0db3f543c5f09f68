package widgets

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-itemform/pkg/model"
)

func TestInfer(t *testing.T) {
	cases := []struct {
		name   string
		desc   model.FieldDescriptor
		expect model.Widget
	}{
		{
			name: "enumeration yields selection",
			desc: model.FieldDescriptor{
				FieldID: "priority",
				Name:    "Priority",
				AllowedValues: []model.AllowedValue{
					{ID: "1", Label: "High"},
					{ID: "2", Label: "Low"},
				},
			},
			expect: model.SelectionWidget{
				ID:    "priority",
				Label: "Priority",
				Options: []model.AllowedValue{
					{ID: "1", Label: "High"},
					{ID: "2", Label: "Low"},
				},
			},
		},
		{
			name: "order and duplicates preserved",
			desc: model.FieldDescriptor{
				FieldID: "sprint",
				Name:    "Sprint",
				AllowedValues: []model.AllowedValue{
					{ID: "9", Label: "Zulu"},
					{ID: "1", Label: "Alpha"},
					{ID: "9", Label: "Zulu"},
				},
			},
			expect: model.SelectionWidget{
				ID:    "sprint",
				Label: "Sprint",
				Options: []model.AllowedValue{
					{ID: "9", Label: "Zulu"},
					{ID: "1", Label: "Alpha"},
					{ID: "9", Label: "Zulu"},
				},
			},
		},
		{
			name:   "nil enumeration yields text",
			desc:   model.FieldDescriptor{FieldID: "duedate", Name: "Due Date"},
			expect: model.TextWidget{ID: "duedate", Label: "Due Date"},
		},
		{
			name: "empty enumeration yields text",
			desc: model.FieldDescriptor{
				FieldID:       "sprint",
				Name:          "Sprint",
				AllowedValues: []model.AllowedValue{},
			},
			expect: model.TextWidget{ID: "sprint", Label: "Sprint"},
		},
		{
			name: "required flag does not matter",
			desc: model.FieldDescriptor{
				FieldID:  "environment",
				Name:     "Environment",
				Required: true,
			},
			expect: model.TextWidget{ID: "environment", Label: "Environment"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Infer(tc.desc)
			if diff := cmp.Diff(tc.expect, got); diff != "" {
				t.Fatalf("widget mismatch (-want +got):\n%s", diff)
			}
			if Resolve(tc.desc) != tc.expect.Kind() {
				t.Fatalf("Resolve = %s, want %s", Resolve(tc.desc), tc.expect.Kind())
			}
		})
	}
}

func TestInfer_DoesNotAliasDescriptor(t *testing.T) {
	desc := model.FieldDescriptor{
		FieldID:       "priority",
		Name:          "Priority",
		AllowedValues: []model.AllowedValue{{ID: "1", Label: "High"}},
	}
	widget, ok := Infer(desc).(model.SelectionWidget)
	if !ok {
		t.Fatalf("expected selection widget")
	}
	desc.AllowedValues[0].Label = "changed"
	if widget.Options[0].Label != "High" {
		t.Fatalf("widget options changed with the descriptor")
	}
}
