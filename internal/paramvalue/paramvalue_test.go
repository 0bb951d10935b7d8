package paramvalue_test

import (
	"testing"

	"github.com/SkanUJkod/SkanUJkod/internal/paramvalue"
	"github.com/stretchr/testify/assert"
)

func TestTextValueRoundTrip(t *testing.T) {
	v := paramvalue.Text("World")
	assert.Equal(t, paramvalue.KindText, v.Kind())
	s, ok := v.AsText()
	assert.True(t, ok)
	assert.Equal(t, "World", s)
	assert.Equal(t, "World", v.String())
}

func TestBoolValueRoundTrip(t *testing.T) {
	v := paramvalue.Bool(true)
	assert.Equal(t, paramvalue.KindBool, v.Kind())
	b, ok := v.AsBool()
	assert.True(t, ok)
	assert.True(t, b)
}

func TestNumberValueRoundTrip(t *testing.T) {
	v := paramvalue.Number(42.5)
	assert.Equal(t, paramvalue.KindNumber, v.Kind())
	n, ok := v.AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 42.5, n)
}

func TestMismatchedAccessorsFail(t *testing.T) {
	v := paramvalue.Text("x")
	_, ok := v.AsBool()
	assert.False(t, ok)
	_, ok = v.AsNumber()
	assert.False(t, ok)
}

func TestParseCLIValueGuessesKind(t *testing.T) {
	assert.Equal(t, paramvalue.KindBool, paramvalue.ParseCLIValue("true").Kind())
	assert.Equal(t, paramvalue.KindBool, paramvalue.ParseCLIValue("false").Kind())
	assert.Equal(t, paramvalue.KindNumber, paramvalue.ParseCLIValue("3.14").Kind())
	assert.Equal(t, paramvalue.KindText, paramvalue.ParseCLIValue("./p").Kind())
}
