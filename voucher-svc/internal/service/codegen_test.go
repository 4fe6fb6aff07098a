package service_test

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-voucher/voucher-svc/internal/service"
)

var voucherCodePattern = regexp.MustCompile(`^WEDD-VOUCHER-[A-Z0-9]{10}$`)

func TestRandomCodeGenerator_Format(t *testing.T) {
	gen := service.RandomCodeGenerator{}

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)
		assert.Regexp(t, voucherCodePattern, code)
		seen[code] = struct{}{}
	}
	assert.Len(t, seen, 200)
}

func TestRandomCodeGenerator_Source(t *testing.T) {
	tests := []struct {
		name     string
		source   []byte
		expected string
	}{
		{
			name:     "maps_bytes_onto_alphabet",
			source:   []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			expected: "WEDD-VOUCHER-ABCDEFGHIJ",
		},
		{
			name:     "wraps_modulo_alphabet",
			source:   []byte{26, 35, 36, 71, 72, 107, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			expected: "WEDD-VOUCHER-09A9A9AAAA",
		},
		{
			name:     "drops_biased_bytes",
			source:   []byte{252, 253, 254, 255, 25, 25, 25, 25, 25, 25, 25, 25, 25, 25, 0, 0, 0, 0, 0, 0},
			expected: "WEDD-VOUCHER-ZZZZZZZZZZ",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			gen := service.RandomCodeGenerator{Rand: bytes.NewReader(testCase.source)}
			code, err := gen.Generate()
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, code)
		})
	}
}

func TestRandomCodeGenerator_SourceExhausted(t *testing.T) {
	gen := service.RandomCodeGenerator{Rand: bytes.NewReader([]byte{1, 2, 3})}

	_, err := gen.Generate()
	assert.Error(t, err)
}
