package georesolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"iptrust/testutils"
)

func TestNewMaxMindResolverMissingDatabase(t *testing.T) {
	assert := assert.New(t)

	r, err := NewMaxMindResolver(testutils.NewTestLogger(t), "does-not-exist.mmdb", "")
	assert.Nil(r)
	assert.NotNil(err)
}
