package pk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoints_DefaultSeries(t *testing.T) {
	got := ParsePoints(DefaultPoints)

	require.Len(t, got, 6)
	assert.Equal(t, []Sample{
		{0, 0}, {1, 2.1}, {2, 3.5}, {4, 2.2}, {6, 1.1}, {8, 0.6},
	}, got)
}

func TestParsePoints_SortsByTimeKeepingDuplicates(t *testing.T) {
	got := ParsePoints("4:1, 1:3 ,2:5,1:7")

	assert.Equal(t, []Sample{{1, 3}, {1, 7}, {2, 5}, {4, 1}}, got)
}

func TestParsePoints_TrimsWhitespace(t *testing.T) {
	got := ParsePoints("  0 : 1.5 ,\t2: 0.75 ")

	assert.Equal(t, []Sample{{0, 1.5}, {2, 0.75}}, got)
}

func TestParsePoints_SplitsOnFirstColonOnly(t *testing.T) {
	// "1:2:3" -> concentración "2:3" no es número.
	assert.Empty(t, ParsePoints("0:1,1:2:3"))
}

func TestParsePoints_MalformedYieldsEmpty(t *testing.T) {
	cases := map[string]string{
		"garbage":        "abc",
		"missing colon":  "0:1,2",
		"bad number":     "0:1,x:2",
		"empty":          "",
		"trailing comma": "0:1,",
		"nan":            "0:NaN",
		"inf":            "Inf:1",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			got := ParsePoints(raw)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}
