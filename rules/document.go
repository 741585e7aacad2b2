package rules

import (
	"encoding/json"
	"fmt"

	"iptrust/trust"
)

// Rule document structure. Exactly one of value/any per rule; points is a
// pointer so a missing field is distinguishable from zero.
type ruleDocument struct {
	Rules  []ruleEntry  `json:"rules,omitempty"`
	Groups []groupEntry `json:"groups,omitempty"`
}

type groupEntry struct {
	Name  string      `json:"name"`
	Rules []ruleEntry `json:"rules"`
}

type ruleEntry struct {
	Attribute string  `json:"attribute"`
	Value     *string `json:"value,omitempty"`
	Any       bool    `json:"any,omitempty"`
	Points    *int    `json:"points"`
}

// SaveDocument serializes a collection to its JSON document form. The output is
// deterministic: rules and groups keep collection order.
func SaveDocument(c *Collection) ([]byte, error) {
	doc := ruleDocument{}
	for _, r := range c.rules {
		doc.Rules = append(doc.Rules, toEntry(r))
	}
	for _, g := range c.groups {
		ge := groupEntry{Name: g.name}
		for _, r := range g.rules {
			ge.Rules = append(ge.Rules, toEntry(r))
		}
		doc.Groups = append(doc.Groups, ge)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// LoadDocument parses and validates a JSON rule document. It fails atomically
// with a *trust.MalformedRuleDocumentError: either the whole document is valid
// and a collection is returned, or nothing is.
func LoadDocument(data []byte) (*Collection, error) {
	var doc ruleDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &trust.MalformedRuleDocumentError{Reason: "invalid JSON", Err: err}
	}

	rr, err := toRules(doc.Rules)
	if err != nil {
		return nil, err
	}
	c := NewCollection(rr...)

	for _, ge := range doc.Groups {
		if ge.Name == "" {
			return nil, &trust.MalformedRuleDocumentError{Reason: "group is missing a name"}
		}
		gr, err := toRules(ge.Rules)
		if err != nil {
			return nil, err
		}
		c.AddGroup(ge.Name, gr...)
	}

	return c, nil
}

func toEntry(r Rule) ruleEntry {
	points := r.points
	e := ruleEntry{Attribute: string(r.attribute), Points: &points}
	switch m := r.match.(type) {
	case ExactMatch:
		v := m.Value
		e.Value = &v
	case AnyMatch:
		e.Any = true
	}
	return e
}

func toRules(ee []ruleEntry) (rr []Rule, err error) {
	for i, e := range ee {
		var r Rule
		r, err = toRule(e)
		if err != nil {
			err = &trust.MalformedRuleDocumentError{Reason: fmt.Sprintf("rule at index %d", i), Err: err}
			return nil, err
		}
		rr = append(rr, r)
	}
	return
}

func toRule(e ruleEntry) (Rule, error) {
	if e.Attribute == "" {
		return Rule{}, fmt.Errorf("missing required field \"attribute\"")
	}
	a, ok := trust.ParseAttribute(e.Attribute)
	if !ok {
		return Rule{}, &trust.InvalidAttributeError{Name: e.Attribute}
	}
	if e.Points == nil {
		return Rule{}, fmt.Errorf("missing required field \"points\"")
	}
	if e.Value != nil && e.Any {
		return Rule{}, fmt.Errorf("both \"value\" and \"any\" are set")
	}
	if e.Value == nil && !e.Any {
		return Rule{}, fmt.Errorf("one of \"value\" or \"any\" is required")
	}

	var m Match
	if e.Any {
		m = AnyMatch{}
	} else {
		m = ExactMatch{Value: *e.Value}
	}
	return Rule{attribute: a, match: m, points: *e.Points}, nil
}
