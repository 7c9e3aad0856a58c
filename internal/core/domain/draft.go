package domain

import (
	"encoding/json"
	"fmt"
	"maps"
	"sort"
	"time"
)

// Remote field names of a change request.
const (
	FieldShortDescription   = "short_description"
	FieldDescription        = "description"
	FieldAssignmentGroup    = "assignment_group"
	FieldService            = "service"
	FieldJustification      = "justification"
	FieldImplementationPlan = "implementation_plan"
	FieldRiskAndImpact      = "risk_and_impact"
	FieldBackoutPlan        = "backout_plan"
	FieldTestPlan           = "test_plan"
	FieldPlannedStartDate   = "planned_start_date"
	FieldPlannedEndDate     = "planned_end_date"
)

// runTimeLayout matches an ISO-8601 UTC timestamp with millisecond precision.
const runTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// DraftDefaults are the field values a draft starts from before overrides.
type DraftDefaults struct {
	AssignmentGroup    string
	Service            string
	Justification      string
	ImplementationPlan string
	RiskAndImpact      string
	BackoutPlan        string
	TestPlan           string
}

// ChangeRequestDraft is the create-request document. It is immutable: every
// accessor hands out copies.
type ChangeRequestDraft struct {
	fields map[string]any
}

// Get returns the value stored under key.
func (d ChangeRequestDraft) Get(key string) (any, bool) {
	v, ok := d.fields[key]
	return v, ok
}

// String returns the value under key formatted as a string, or "" if unset.
func (d ChangeRequestDraft) String(key string) string {
	v, ok := d.fields[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Fields returns a copy of the document.
func (d ChangeRequestDraft) Fields() map[string]any {
	return maps.Clone(d.fields)
}

// Keys returns the document keys in sorted order.
func (d ChangeRequestDraft) Keys() []string {
	keys := make([]string, 0, len(d.fields))
	for k := range d.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (d ChangeRequestDraft) Len() int {
	return len(d.fields)
}

func (d ChangeRequestDraft) MarshalJSON() ([]byte, error) {
	if d.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d.fields)
}

// PayloadBuilder fills drafts from a fixed set of defaults.
type PayloadBuilder struct {
	defaults DraftDefaults
	loc      *time.Location
}

// NewPayloadBuilder returns a builder rendering planned dates in loc. A nil
// loc means local time.
func NewPayloadBuilder(defaults DraftDefaults, loc *time.Location) *PayloadBuilder {
	if loc == nil {
		loc = time.Local
	}
	return &PayloadBuilder{defaults: defaults, loc: loc}
}

// Defaults returns the default document for the given window and run time,
// without any overrides applied.
func (b *PayloadBuilder) Defaults(window TimeWindow, runTime time.Time) map[string]any {
	start, end := window.Format(b.loc)
	stamp := runTime.UTC().Format(runTimeLayout)

	return map[string]any{
		FieldShortDescription:   fmt.Sprintf("Automated Change Request at %s", stamp),
		FieldDescription:        fmt.Sprintf("This change request was submitted via the Change Management API at %s.", stamp),
		FieldAssignmentGroup:    b.defaults.AssignmentGroup,
		FieldService:            b.defaults.Service,
		FieldJustification:      b.defaults.Justification,
		FieldImplementationPlan: b.defaults.ImplementationPlan,
		FieldRiskAndImpact:      b.defaults.RiskAndImpact,
		FieldBackoutPlan:        b.defaults.BackoutPlan,
		FieldTestPlan:           b.defaults.TestPlan,
		FieldPlannedStartDate:   start,
		FieldPlannedEndDate:     end,
	}
}

// Build merges overrides over the defaults. Keys in overrides replace the
// default value; unknown keys are carried through untouched. overrides is
// never modified.
func (b *PayloadBuilder) Build(window TimeWindow, runTime time.Time, overrides OverrideSet) ChangeRequestDraft {
	fields := b.Defaults(window, runTime)
	for k, v := range overrides {
		fields[k] = v
	}
	return ChangeRequestDraft{fields: fields}
}
