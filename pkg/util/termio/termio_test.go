package termio

import (
	"testing"

	"github.com/consensys/go-euval/pkg/util/assert"
)

func TestColour_WrapsAndResets(t *testing.T) {
	assert.Equal(t, "\033[31mhello\033[0m", Colour("hello", TERM_RED))
}
