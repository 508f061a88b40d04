package identity

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashIsDeterministic(t *testing.T) {
	assert.Equal(t, Hash("203.0.113.7"), Hash("203.0.113.7"))
	assert.NotEqual(t, Hash("203.0.113.7"), Hash("203.0.113.8"))
}

func TestHashOutputIsFixedLengthHex(t *testing.T) {
	hexRe := regexp.MustCompile(`^[0-9a-f]{64}$`)
	for _, input := range []string{"1.1.1.1", "::1", "", "not-an-ip"} {
		assert.Regexp(t, hexRe, Hash(input), "input %q", input)
	}
}

func TestHashDoesNotLeakInput(t *testing.T) {
	assert.NotContains(t, Hash("192.168.0.1"), "192.168.0.1")
}
