package api

import (
	"github.com/solatis/mwsfba/internal/fba"
	"github.com/solatis/mwsfba/internal/params"
)

// ActionSummary names one catalog action.
type ActionSummary struct {
	Group      string `json:"group"`
	GroupTitle string `json:"group_title"`
	Action     string `json:"action"`
	Path       string `json:"path"`
}

// FieldInfo describes one field of an action.
type FieldInfo struct {
	Name     string   `json:"name"`
	WirePath string   `json:"wire_path"`
	Kind     string   `json:"kind"`
	List     bool     `json:"list,omitempty"`
	Required bool     `json:"required,omitempty"`
	Allowed  []string `json:"allowed,omitempty"`
}

// ActionDetail is an action with its field table.
type ActionDetail struct {
	ActionSummary
	Version string      `json:"version"`
	Fields  []FieldInfo `json:"fields"`
}

// Actions lists every action in group, or in every group when group is
// empty. Order is group then action name.
func (s *ParamsService) Actions(group string) ([]ActionSummary, error) {
	groups := s.catalog.Groups()
	if group != "" {
		groups = []string{group}
	}

	var out []ActionSummary
	for _, g := range groups {
		for _, name := range s.catalog.Actions(g) {
			a, err := s.catalog.Lookup(g, name)
			if err != nil {
				return nil, err
			}
			out = append(out, summarize(a))
		}
	}
	if group != "" && len(out) == 0 {
		// Lookup reports the group as an unknown action.
		_, err := s.catalog.Lookup(group, "")
		return nil, err
	}
	return out, nil
}

// Describe returns the field table for group/action.
func (s *ParamsService) Describe(group, action string) (*ActionDetail, error) {
	a, err := s.catalog.Lookup(group, action)
	if err != nil {
		return nil, err
	}

	d := &ActionDetail{
		ActionSummary: summarize(a),
		Version:       a.Version,
		Fields:        []FieldInfo{},
	}
	for _, name := range a.Schema.Fields() {
		def, _ := a.Schema.Definition(name)
		f := FieldInfo{
			Name:     name,
			WirePath: def.WirePath,
			Kind:     def.Kind.String(),
			List:     def.List,
			Required: def.Required,
		}
		if def.Kind == params.KindEnum && def.Enum != nil {
			f.Allowed = def.Enum.Values()
		}
		d.Fields = append(d.Fields, f)
	}
	return d, nil
}

func summarize(a *params.Action) ActionSummary {
	return ActionSummary{
		Group:      a.Group,
		GroupTitle: fba.GroupTitle(a.Group),
		Action:     a.Name,
		Path:       a.Path,
	}
}
