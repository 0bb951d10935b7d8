package qid_test

import (
	"testing"

	"github.com/SkanUJkod/SkanUJkod/internal/qid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidHalves(t *testing.T) {
	cases := []struct {
		name     string
		plugin   string
		function string
	}{
		{"empty plugin", "", "world"},
		{"empty function", "hello", ""},
		{"whitespace in plugin", "he llo", "world"},
		{"path separator in function", "hello", "wor/ld"},
		{"backslash in plugin", "hel\\lo", "world"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := qid.New(tc.plugin, tc.function)
			require.Error(t, err)
		})
	}
}

func TestStringRendersBothHalves(t *testing.T) {
	q, err := qid.New("hello", "world")
	require.NoError(t, err)
	assert.Equal(t, "hello::world", q.String())
}

func TestEqualityIsByteForByte(t *testing.T) {
	a, err := qid.New("hello", "world")
	require.NoError(t, err)
	b, err := qid.New("hello", "world")
	require.NoError(t, err)
	c, err := qid.New("Hello", "world")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestQIDIsUsableAsMapKey(t *testing.T) {
	a, _ := qid.New("hello", "world")
	b, _ := qid.New("hello", "world")

	m := map[qid.QID]int{a: 1}
	m[b] = 2

	assert.Len(t, m, 1)
	assert.Equal(t, 2, m[a])
}
