package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixAndInfix(t *testing.T) {
	testCases := []struct {
		prefix string
		infix  string
	}{
		// examples
		{"1", "1"},
		{"x", "x"},
		{"+ 1 2", "(1+2)"},
		{"+ 1 - 2 3", "(1+(2-3))"},
		{"* - 1 + b 3 d", "((1-(b+3))*d)"},
		// variables only
		{"+ a b", "(a+b)"},
		{"+ + + + a b c d e", "((((a+b)+c)+d)+e)"},
		{"+ a * b - c d", "(a+(b*(c-d)))"},
		// constants only
		{"001", "001"},
		{"99999999", "99999999"},
		{"+ + + + 2 4 6 8 10", "((((2+4)+6)+8)+10)"},
		{"+ 6 * 3 - 9 1000", "(6+(3*(9-1000)))"},
		// mixed
		{"- 9000000000 bacd", "(9000000000-bacd)"},
		{"+ - a FDKLDFSJKFDSJ 123233293", "((a-FDKLDFSJKFDSJ)+123233293)"},
		{"+ a * 9000 - c 2123SASD", "(a+(9000*(c-2123SASD)))"},
	}

	for _, tc := range testCases {
		t.Run(tc.prefix, func(t *testing.T) {
			tr := mustParse(t, tc.prefix)

			prefix, err := ToPrefix(tr)
			require.NoError(t, err)
			assert.Equal(t, tc.prefix, prefix)

			infix, err := ToInfix(tr)
			require.NoError(t, err)
			assert.Equal(t, tc.infix, infix)
		})
	}
}

func TestPrefixAfterMutation(t *testing.T) {
	tr := mustParse(t, "- * 1 c + c 1")
	_, err := SimplifyFancy(tr)
	require.NoError(t, err)

	prefix, err := ToPrefix(tr)
	require.NoError(t, err)
	assert.Equal(t, "- c + c 1", prefix)

	infix, err := ToInfix(tr)
	require.NoError(t, err)
	assert.Equal(t, "(c-(c+1))", infix)
}
