package rules

// Group is a named, ordered set of rules. Groups exist purely for organizing
// persisted rule documents; they have no effect on scoring.
type Group struct {
	name  string
	rules []Rule
}

// Name returns the group label.
func (g Group) Name() string { return g.name }

// Rules returns a copy of the group's rules in their original order.
func (g Group) Rules() []Rule {
	rr := make([]Rule, len(g.rules))
	copy(rr, g.rules)
	return rr
}

// Collection is the full ordered rule set consulted per scoring call. Order is
// preserved for deterministic serialization but never affects the summed score.
// A collection is built once and then held read-only by the engine.
type Collection struct {
	rules  []Rule
	groups []Group
}

// NewCollection creates a collection from ungrouped rules.
func NewCollection(rr ...Rule) *Collection {
	c := &Collection{}
	c.rules = append(c.rules, rr...)
	return c
}

// AddGroup tags rules with a group label. Adding to an existing label appends
// to that group; new labels keep their insertion order.
func (c *Collection) AddGroup(name string, rr ...Rule) {
	for i := range c.groups {
		if c.groups[i].name == name {
			c.groups[i].rules = append(c.groups[i].rules, rr...)
			return
		}
	}
	g := Group{name: name}
	g.rules = append(g.rules, rr...)
	c.groups = append(c.groups, g)
}

// All returns every rule in collection order: ungrouped rules first, then each
// group in insertion order. The returned slice is a fresh copy.
func (c *Collection) All() []Rule {
	rr := make([]Rule, 0, c.Len())
	rr = append(rr, c.rules...)
	for _, g := range c.groups {
		rr = append(rr, g.rules...)
	}
	return rr
}

// Groups returns the named groups in insertion order.
func (c *Collection) Groups() []Group {
	gg := make([]Group, len(c.groups))
	copy(gg, c.groups)
	return gg
}

// Len returns the total number of rules, grouped and ungrouped.
func (c *Collection) Len() int {
	n := len(c.rules)
	for _, g := range c.groups {
		n += len(g.rules)
	}
	return n
}

// DefaultCollection returns the stock rule set. Nothing installs it implicitly;
// callers pass it to the engine on purpose.
func DefaultCollection() *Collection {
	b := NewBuilder()
	b.ForAttribute("country").WithValue("US", 10).WithValue("UK", 20)
	b.ForAttribute("region").WithValue("NY", 5).WithValue("CA", 8)
	b.ForAttribute("city").WithValue("New York City", 5).WithValue("Los Angeles", 8)
	rr, _ := b.Build()
	return NewCollection(rr...)
}
