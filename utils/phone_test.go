package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+8801711223344", "01711223344"},
		{"8801711223344", "01711223344"},
		{"01711-223344", "01711223344"},
		{"01711 223 344", "01711223344"},
		{"(880) 1899887766", "01899887766"},
		{"01899887766", "01899887766"},
		{"", ""},
		{"abc", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePhone(tc.in), "input %q", tc.in)
	}
}
