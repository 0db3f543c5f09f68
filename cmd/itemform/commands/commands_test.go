package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-itemform/pkg/model"
	"github.com/goliatone/go-itemform/pkg/renderers/tui"
	"github.com/goliatone/go-itemform/pkg/testsupport"
)

type scriptedDriver struct {
	inputs  []string
	selects []int
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", tui.ErrAborted
	}
	val := d.inputs[0]
	d.inputs = d.inputs[1:]
	return val, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return -1, tui.ErrAborted
	}
	val := d.selects[0]
	d.selects = d.selects[1:]
	return val, nil
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func run(t *testing.T, driver tui.PromptDriver, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(driver)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestWidgetsCommand(t *testing.T) {
	stdout, _, err := run(t, nil, "widgets", testsupport.FixturePath("createmeta.json"))
	require.NoError(t, err)

	got, err := model.UnmarshalWidgets([]byte(stdout))
	require.NoError(t, err)
	want := testsupport.MustLoadWidgets(t, testsupport.FixturePath("createmeta.widgets.json"))
	assert.Equal(t, want, got)
}

func TestWidgetsCommand_OutputFileAndPreset(t *testing.T) {
	out := filepath.Join(t.TempDir(), "widgets.json")
	_, _, err := run(t, nil,
		"widgets", testsupport.FixturePath("createmeta.json"),
		"--preset", testsupport.FixturePath("preset.yaml"),
		"-o", out,
	)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	widgets, err := model.UnmarshalWidgets(data)
	require.NoError(t, err)

	var ids []string
	for _, w := range widgets {
		ids = append(ids, w.WidgetID())
	}
	assert.Equal(t, []string{"priority", "sprint", "customfield_10050"}, ids)
}

func TestWidgetsCommand_OpenAPI(t *testing.T) {
	stdout, _, err := run(t, nil,
		"widgets", testsupport.FixturePath("create_issue.openapi.yaml"),
		"--format", "openapi",
		"--operation", "createIssue",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"id": "dueDate"`)
	assert.NotContains(t, stdout, `"id": "summary"`)
}

func TestWidgetsCommand_Errors(t *testing.T) {
	_, _, err := run(t, nil, "widgets", testsupport.FixturePath("invalid_duplicate.json"))
	assert.ErrorContains(t, err, "duplicate")

	_, _, err = run(t, nil, "widgets", testsupport.FixturePath("createmeta.json"), "--renderer", "vanilla")
	assert.ErrorContains(t, err, `renderer "vanilla"`)

	_, _, err = run(t, nil, "widgets", testsupport.FixturePath("createmeta.json"), "--format", "xml")
	assert.ErrorContains(t, err, "input.format")

	_, _, err = run(t, nil, "widgets")
	assert.Error(t, err)
}

func TestPlanCommand(t *testing.T) {
	stdout, stderr, err := run(t, nil, "plan", testsupport.FixturePath("createmeta.json"))
	require.NoError(t, err)

	assert.Regexp(t, `project\s+Project\s+true\s+skip\s+-`, stdout)
	assert.Regexp(t, `priority\s+Priority\s+false\s+include\s+selection`, stdout)
	assert.Regexp(t, `duedate\s+Due Date\s+false\s+include\s+text`, stdout)
	assert.Regexp(t, `customfield_10050\s+Environment\s+true\s+required-elsewhere\s+-`, stdout)
	assert.Contains(t, stderr, "field=customfield_10050")
}

func TestPromptCommand(t *testing.T) {
	driver := &scriptedDriver{
		selects: []int{2, 0},
		inputs:  []string{"2026-11-01"},
	}
	stdout, _, err := run(t, driver, "prompt", testsupport.FixturePath("createmeta.json"))
	require.NoError(t, err)

	var values map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &values))
	assert.Equal(t, map[string]string{"priority": "3", "duedate": "2026-11-01"}, values)
}

func TestPromptCommand_Aborted(t *testing.T) {
	_, stderr, err := run(t, &scriptedDriver{}, "prompt", testsupport.FixturePath("createmeta.json"))
	assert.ErrorIs(t, err, tui.ErrAborted)
	assert.Contains(t, stderr, "prompt aborted")
}

func TestFieldsCommand(t *testing.T) {
	stdout, _, err := run(t, nil, "fields")
	require.NoError(t, err)
	assert.Equal(t,
		"skip: assignee, description, issuetype, project, reporter, summary\nforce-include: sprint\n",
		stdout,
	)
}

func TestVerboseDumpsDescriptors(t *testing.T) {
	_, stderr, err := run(t, nil, "widgets", testsupport.FixturePath("createmeta.json"), "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "FieldID: (string) (len=8) \"priority\"")
	assert.Contains(t, stderr, "level=DEBUG")
}
