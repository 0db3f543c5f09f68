package fields

import (
	"fmt"
	"sort"
	"strings"
)

// ID identifies a field of a creatable item in the tracking system.
type ID string

// Field identifiers the tables (and most callers) care about.
const (
	Project     ID = "project"
	IssueType   ID = "issuetype"
	Summary     ID = "summary"
	Description ID = "description"
	Reporter    ID = "reporter"
	Assignee    ID = "assignee"
	Sprint      ID = "sprint"
	Priority    ID = "priority"
	DueDate     ID = "duedate"
	Labels      ID = "labels"
	Components  ID = "components"
	FixVersions ID = "fixVersions"
	Parent      ID = "parent"
)

// String implements fmt.Stringer.
func (id ID) String() string {
	return string(id)
}

type set map[ID]struct{}

func newSet(ids ...ID) set {
	out := make(set, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func (s set) has(id ID) bool {
	_, ok := s[id]
	return ok
}

func (s set) sorted() []ID {
	out := make([]ID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var (
	skipFields = newSet(
		Project,
		IssueType,
		Summary,
		Description,
		Reporter,
		Assignee,
	)

	// Sprint is reported as optional by the tracking system but has its own
	// lifecycle on boards, so it is always surfaced.
	forceIncludeFields = newSet(
		Sprint,
	)
)

// IsSkipped reports whether id belongs to the mandatory section of the form.
func IsSkipped(id ID) bool {
	return skipFields.has(id)
}

// IsForceIncluded reports whether id must always produce a widget.
func IsForceIncluded(id ID) bool {
	return forceIncludeFields.has(id)
}

// SkipFields returns the skip table as a sorted copy.
func SkipFields() []ID {
	return skipFields.sorted()
}

// ForceIncludeFields returns the force-include table as a sorted copy.
func ForceIncludeFields() []ID {
	return forceIncludeFields.sorted()
}

// CheckTables returns an error when the two tables share an identifier.
// Classify still resolves such overlaps (skip wins), but a shared id almost
// always means one of the tables was edited by mistake.
func CheckTables() error {
	return checkDisjoint(skipFields, forceIncludeFields)
}

func checkDisjoint(skip, force set) error {
	var shared []string
	for _, id := range skip.sorted() {
		if force.has(id) {
			shared = append(shared, string(id))
		}
	}
	if len(shared) > 0 {
		return fmt.Errorf("fields: ids present in both skip and force-include tables: %s", strings.Join(shared, ", "))
	}
	return nil
}
