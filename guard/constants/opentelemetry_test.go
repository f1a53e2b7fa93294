//go:build unit

package constant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeMetricLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string returns empty", input: "", want: ""},
		{name: "short string returned as-is", input: "ledger", want: "ledger"},
		{name: "exactly 64 chars returned as-is", input: strings.Repeat("x", 64), want: strings.Repeat("x", 64)},
		{name: "65 chars truncated to 64", input: strings.Repeat("y", 65), want: strings.Repeat("y", 64)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, SanitizeMetricLabel(tt.input))
		})
	}
}

func TestGuardAttributeKeysSharePrefix(t *testing.T) {
	t.Parallel()

	for _, key := range []string{
		AttrGuardAssertion, AttrGuardKind, AttrGuardParameter, AttrGuardMessage,
		AttrGuardComponent, AttrGuardOperation, AttrGuardStack,
	} {
		assert.True(t, strings.HasPrefix(key, AttrPrefixGuard), key)
	}
}
