package service

import (
	"crypto/rand"
	"fmt"
	"io"
)

const (
	VoucherCodePrefix = "WEDD-VOUCHER-"
	VoucherCodeLength = 10
	// VoucherCodeAlphabet is sampled uniformly; case-insensitive scanners read the same code.
	VoucherCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type CodeGenerator interface {
	Generate() (string, error)
}

type RandomCodeGenerator struct {
	// Rand defaults to crypto/rand.Reader.
	Rand io.Reader
}

func (g RandomCodeGenerator) Generate() (string, error) {
	src := g.Rand
	if src == nil {
		src = rand.Reader
	}

	alphabetLen := byte(len(VoucherCodeAlphabet))
	// bytes >= limit are dropped so every symbol is equally likely
	limit := 256 - 256%int(alphabetLen)

	out := make([]byte, 0, VoucherCodeLength)
	buf := make([]byte, VoucherCodeLength*2)
	for len(out) < VoucherCodeLength {
		if _, err := io.ReadFull(src, buf); err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, VoucherCodeAlphabet[b%alphabetLen])
			if len(out) == VoucherCodeLength {
				break
			}
		}
	}

	return VoucherCodePrefix + string(out), nil
}

var _ CodeGenerator = RandomCodeGenerator{}
