package symbol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/AAUP4-Projekt/wrench/symbol"
)

func TestIntern(t *testing.T) {
	assert.Equal(t, symbol.Intern("abc"), symbol.Intern("abc"))
	assert.False(t, symbol.Intern("abc") == symbol.Intern("cde"))
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"_", "_3", "$x", "xyz"} {
		id := symbol.Intern(name)
		name2 := id.Str()
		assert.Equal(t, name, name2)
	}
}

func TestInvalidIsZero(t *testing.T) {
	assert.Equal(t, symbol.ID(0), symbol.Invalid)
}
