package httpapi

import (
	"github.com/dmitrymomot/pvframework/pkg/ruleset"
)

// RulesetView describes a registered rule set.
type RulesetView struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Rules       []ruleset.Rule `json:"rules"`
}

type rulesetRequest struct {
	Name string `path:"name"`
}

func (s *Service) listRulesets(_ Context, _ struct{}) Response {
	names := s.registry.Names()
	views := make([]RulesetView, 0, len(names))
	for _, name := range names {
		set, err := s.registry.Get(name)
		if err != nil {
			// removed concurrently
			continue
		}
		views = append(views, viewOf(set.Ruleset))
	}
	return JSON(views, WithMeta(map[string]any{"total": len(views)}))
}

func (s *Service) getRuleset(_ Context, req rulesetRequest) Response {
	set, err := s.registry.Get(req.Name)
	if err != nil {
		return errorResponse(err)
	}
	return JSON(viewOf(set.Ruleset))
}

func viewOf(rs *ruleset.Ruleset) RulesetView {
	f := rs.File()
	return RulesetView{Name: f.Name, Description: f.Description, Rules: f.Rules}
}
