package report

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/pvframework"
)

// Argument is the serialized form of one invocation argument.
type Argument struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Location string `json:"location"`
	Provided bool   `json:"provided"`
	Required bool   `json:"required"`
}

// Finding is the serialized form of a pvframework.ValidationError.
type Finding struct {
	ID        int        `json:"id"`
	Kind      string     `json:"kind"`
	Mode      string     `json:"mode"`
	Validator string     `json:"validator"`
	Mapping   string     `json:"mapping"`
	Location  string     `json:"location"`
	Message   string     `json:"message"`
	Arguments []Argument `json:"arguments,omitempty"`
}

// Report summarizes one validation run. Its ID is the run ID.
type Report struct {
	ID          string         `json:"id"`
	Ruleset     string         `json:"ruleset,omitempty"`
	InstanceKey string         `json:"instance_key"`
	Succeeded   bool           `json:"succeeded"`
	NumErrors   int            `json:"num_errors"`
	NumFails    int            `json:"num_fails"`
	NumWarnings int            `json:"num_warnings"`
	Duration    time.Duration  `json:"duration_ns"`
	CountByID   map[int]int    `json:"count_by_id,omitempty"`
	CountByKind map[string]int `json:"count_by_kind,omitempty"`
	Findings    []Finding      `json:"findings"`
	CreatedAt   time.Time      `json:"created_at"`
}

// FromResult converts a sealed result. ruleset may be empty.
func FromResult(ruleset string, r *pvframework.Result) Report {
	errs := r.Errors()
	rep := Report{
		ID:          r.RunID(),
		Ruleset:     ruleset,
		InstanceKey: r.InstanceKey(),
		Succeeded:   r.Succeeded(),
		NumErrors:   r.NumErrorsTotal(),
		NumFails:    r.NumFails(),
		NumWarnings: r.NumWarnings(),
		Duration:    r.Duration(),
		Findings:    make([]Finding, 0, len(errs)),
		CreatedAt:   time.Now().UTC(),
	}
	if len(errs) > 0 {
		rep.CountByID = r.CountByID()
		rep.CountByKind = make(map[string]int)
		for kind, n := range r.CountByKind() {
			rep.CountByKind[kind.String()] = n
		}
	}

	for _, e := range errs {
		f := Finding{
			ID:        e.ID,
			Kind:      e.Kind.String(),
			Mode:      e.Mode.String(),
			Validator: e.Validator,
			Mapping:   e.Mapping,
			Location:  e.Location,
		}
		if e.Cause != nil {
			f.Message = e.Cause.Error()
		}
		if e.Arguments != nil {
			for _, a := range e.Arguments.All() {
				f.Arguments = append(f.Arguments, Argument{
					Name:     a.Name,
					Value:    fmt.Sprintf("%v", a.Value),
					Location: a.Location,
					Provided: a.Provided,
					Required: a.Required,
				})
			}
		}
		rep.Findings = append(rep.Findings, f)
	}
	return rep
}

// Failures returns the findings recorded in error mode.
func (r Report) Failures() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Mode != pvframework.ModeWarning.String() {
			out = append(out, f)
		}
	}
	return out
}
