package rules

import (
	"fmt"
	"strings"

	"iptrust/trust"
)

// Match is the condition half of a rule: either one exact value or a wildcard.
// The two cases are distinct types so that a rule can never carry both.
type Match interface {
	// Matches reports whether the given attribute value satisfies the
	// condition. foldCase selects case-insensitive comparison; the default
	// engine policy is exact case-sensitive equality.
	Matches(value string, foldCase bool) bool
	isMatch()
}

// ExactMatch accepts a single specific attribute value.
type ExactMatch struct {
	Value string
}

// Matches compares the bag value against the expected value.
func (m ExactMatch) Matches(value string, foldCase bool) bool {
	if foldCase {
		return strings.EqualFold(m.Value, value)
	}
	return m.Value == value
}

func (ExactMatch) isMatch() {}

// AnyMatch accepts every value of its attribute.
type AnyMatch struct {
}

// Matches always reports true.
func (AnyMatch) Matches(string, bool) bool { return true }

func (AnyMatch) isMatch() {}

// Rule awards points when a resolved attribute satisfies its match condition.
// Rules are immutable once built; points may be negative to express a penalty.
type Rule struct {
	attribute trust.Attribute
	match     Match
	points    int
}

// Attribute returns the attribute the rule applies to.
func (r Rule) Attribute() trust.Attribute { return r.attribute }

// Match returns the rule's match condition.
func (r Rule) Match() Match { return r.match }

// Points returns the rule's point contribution.
func (r Rule) Points() int { return r.points }

// Clone returns an independent copy of the rule, usable as a starting point for
// a modified rebuild.
func (r Rule) Clone() Rule {
	return Rule{attribute: r.attribute, match: r.match, points: r.points}
}

// MatchesBag reports whether the bag contains the rule's attribute with a value
// the match condition accepts.
func (r Rule) MatchesBag(bag trust.AttributeBag, foldCase bool) bool {
	v, ok := bag[r.attribute]
	if !ok {
		return false
	}
	return r.match.Matches(v, foldCase)
}

func (r Rule) String() string {
	if m, ok := r.match.(ExactMatch); ok {
		return fmt.Sprintf("award %d points for %s with value %q", r.points, r.attribute, m.Value)
	}
	return fmt.Sprintf("award %d points for any value of %s", r.points, r.attribute)
}
