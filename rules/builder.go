package rules

import "iptrust/trust"

// Builder constructs validated rules fluently. Validation failures are recorded
// and surfaced by Build, so chained calls never have to check intermediate
// errors.
type Builder struct {
	rules    []Rule
	current  trust.Attribute
	selected bool
	matched  bool
	err      error
}

// NewBuilder creates an empty rule builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// ForAttribute selects the attribute the following WithValue/WithAnyValue calls
// apply to. A name outside the attribute schema records an
// InvalidAttributeError; selecting a new attribute while the previous one has
// no match registered records ErrIncompleteRule.
func (b *Builder) ForAttribute(name string) *Builder {
	if b.err != nil {
		return b
	}
	if b.selected && !b.matched {
		b.err = trust.ErrIncompleteRule
		return b
	}
	a, ok := trust.ParseAttribute(name)
	if !ok {
		b.err = &trust.InvalidAttributeError{Name: name}
		return b
	}
	b.current = a
	b.selected = true
	b.matched = false
	return b
}

// WithValue registers an exact-value rule for the current attribute. It may be
// called multiple times to register several value-to-points mappings; each call
// yields one rule.
func (b *Builder) WithValue(value string, points int) *Builder {
	return b.addMatch(ExactMatch{Value: value}, points)
}

// WithAnyValue registers a wildcard rule for the current attribute.
func (b *Builder) WithAnyValue(points int) *Builder {
	return b.addMatch(AnyMatch{}, points)
}

func (b *Builder) addMatch(m Match, points int) *Builder {
	if b.err != nil {
		return b
	}
	if !b.selected {
		b.err = trust.ErrIncompleteRule
		return b
	}
	b.rules = append(b.rules, Rule{attribute: b.current, match: m, points: points})
	b.matched = true
	return b
}

// Build finalizes the builder and returns all constructed rules. It fails with
// the first recorded validation error, or with ErrIncompleteRule if no attribute
// was ever selected or the last selected attribute registered no match.
func (b *Builder) Build() ([]Rule, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !b.selected || !b.matched {
		return nil, trust.ErrIncompleteRule
	}
	rr := make([]Rule, len(b.rules))
	copy(rr, b.rules)
	return rr, nil
}
