package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const base10 = 10

var ten = big.NewInt(base10)

func ShortenAddress(s string) string {
	if len(s) <= 12 {
		return s
	}
	return s[:6] + "..." + s[len(s)-4:]
}

// IsAddress reports whether input is a 20 byte hex address, with or without
// the 0x prefix. Mixed case is accepted without verifying the EIP-55 checksum.
func IsAddress(input string) bool {
	return common.IsHexAddress(strings.TrimSpace(input))
}

// FormatUnits renders amount scaled down by 10^decimals as a minimal decimal
// string: no leading zeros in the integer part, no trailing zeros in the
// fraction, and no decimal point when the fraction is empty.
//
// amount must be non-negative and decimals must be >= 0; anything else is a
// caller bug and panics.
func FormatUnits(amount *big.Int, decimals int) string {
	if amount == nil {
		panic("utils.FormatUnits: nil amount")
	}
	if amount.Sign() < 0 {
		panic(fmt.Sprintf("utils.FormatUnits: negative amount %s", amount.String()))
	}
	if decimals < 0 {
		panic(fmt.Sprintf("utils.FormatUnits: negative decimals %d", decimals))
	}

	divisor := new(big.Int).Exp(ten, big.NewInt(int64(decimals)), nil)
	integerPart, remainder := new(big.Int).QuoRem(amount, divisor, new(big.Int))

	whole := integerPart.Text(base10)
	if decimals == 0 {
		return whole
	}

	fraction := remainder.Text(base10)
	if pad := decimals - len(fraction); pad > 0 {
		fraction = strings.Repeat("0", pad) + fraction
	}
	fraction = strings.TrimRight(fraction, "0")

	if fraction == "" {
		return whole
	}
	return whole + "." + fraction
}

// ParseUnits is the inverse of FormatUnits: it turns a plain decimal string
// such as "1.5" into base units. Inputs carrying more fractional digits than
// decimals are rejected rather than rounded.
func ParseUnits(amount string, decimals int) (*big.Int, error) {
	if decimals < 0 {
		return nil, fmt.Errorf("invalid decimals %d", decimals)
	}

	s := strings.TrimSpace(amount)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}

	whole, fraction, hasPoint := strings.Cut(s, ".")
	if hasPoint && fraction == "" {
		return nil, fmt.Errorf("invalid amount %q: missing fractional digits", amount)
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || !isDigits(fraction) {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	if len(fraction) > decimals {
		return nil, fmt.Errorf("amount %q has more than %d fractional digits", amount, decimals)
	}

	digits := whole + fraction + strings.Repeat("0", decimals-len(fraction))
	value, ok := new(big.Int).SetString(digits, base10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	return value, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func MaxUint256() *big.Int {
	maxUint256 := new(big.Int)
	maxUint256.SetString("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", 16)
	return maxUint256
}
