package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"iptrust/trust"
)

func TestBuilderExactValue(t *testing.T) {
	assert := assert.New(t)

	rr, err := NewBuilder().ForAttribute("country").WithValue("US", 10).Build()
	assert.Nil(err)
	assert.Equal(1, len(rr))

	r := rr[0]
	assert.Equal(trust.AttrCountry, r.Attribute())
	assert.Equal(10, r.Points())
	assert.True(r.MatchesBag(trust.AttributeBag{trust.AttrCountry: "US"}, false))
	assert.False(r.MatchesBag(trust.AttributeBag{trust.AttrCountry: "us"}, false))
	assert.False(r.MatchesBag(trust.AttributeBag{trust.AttrCountry: "FR"}, false))
	assert.False(r.MatchesBag(trust.AttributeBag{trust.AttrCity: "US"}, false))
}

func TestBuilderAnyValue(t *testing.T) {
	assert := assert.New(t)

	rr, err := NewBuilder().ForAttribute("country").WithAnyValue(2).Build()
	assert.Nil(err)
	assert.Equal(1, len(rr))

	r := rr[0]
	assert.True(r.MatchesBag(trust.AttributeBag{trust.AttrCountry: "US"}, false))
	assert.True(r.MatchesBag(trust.AttributeBag{trust.AttrCountry: ""}, false))
	assert.True(r.MatchesBag(trust.AttributeBag{trust.AttrCountry: "anything at all"}, false))
	assert.False(r.MatchesBag(trust.AttributeBag{trust.AttrCity: "US"}, false))
}

func TestBuilderMultipleValuesPerAttribute(t *testing.T) {
	assert := assert.New(t)

	rr, err := NewBuilder().
		ForAttribute("country").WithValue("US", 10).WithValue("UK", 20).WithAnyValue(2).
		ForAttribute("region").WithValue("NY", 5).
		Build()
	assert.Nil(err)
	assert.Equal(4, len(rr))
	assert.Equal(trust.AttrCountry, rr[0].Attribute())
	assert.Equal(trust.AttrRegion, rr[3].Attribute())
}

func TestBuilderInvalidAttribute(t *testing.T) {
	assert := assert.New(t)

	rr, err := NewBuilder().ForAttribute("not_an_attribute").WithValue("US", 10).Build()
	assert.Nil(rr)

	invalidErr, ok := err.(*trust.InvalidAttributeError)
	assert.True(ok)
	assert.Equal("not_an_attribute", invalidErr.Name)
}

func TestBuilderNoAttributeSelected(t *testing.T) {
	assert := assert.New(t)

	rr, err := NewBuilder().WithValue("US", 10).Build()
	assert.Nil(rr)
	assert.Equal(trust.ErrIncompleteRule, err)

	rr, err = NewBuilder().Build()
	assert.Nil(rr)
	assert.Equal(trust.ErrIncompleteRule, err)
}

func TestBuilderAttributeWithoutMatch(t *testing.T) {
	assert := assert.New(t)

	rr, err := NewBuilder().ForAttribute("country").Build()
	assert.Nil(rr)
	assert.Equal(trust.ErrIncompleteRule, err)

	rr, err = NewBuilder().ForAttribute("country").ForAttribute("city").WithValue("Oslo", 1).Build()
	assert.Nil(rr)
	assert.Equal(trust.ErrIncompleteRule, err)
}

func TestBuilderNegativePoints(t *testing.T) {
	assert := assert.New(t)

	rr, err := NewBuilder().ForAttribute("isp").WithAnyValue(-25).Build()
	assert.Nil(err)
	assert.Equal(-25, rr[0].Points())
}

func TestRuleCloneIsIndependent(t *testing.T) {
	assert := assert.New(t)

	rr, err := NewBuilder().ForAttribute("country").WithValue("US", 10).Build()
	assert.Nil(err)

	clone := rr[0].Clone()
	assert.Equal(rr[0], clone)

	// The original list can grow and change without affecting the clone.
	rr = append(rr, clone)
	rr[0] = Rule{}
	assert.Equal(trust.AttrCountry, clone.Attribute())
	assert.Equal(10, clone.Points())
}

func TestMatchFoldCase(t *testing.T) {
	assert := assert.New(t)

	m := ExactMatch{Value: "US"}
	assert.False(m.Matches("us", false))
	assert.True(m.Matches("us", true))
	assert.True(m.Matches("US", true))
	assert.False(m.Matches("usa", true))
}
