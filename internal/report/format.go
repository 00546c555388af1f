package report

import "math/big"

const tokenDecimals = 18

// FormatTokenAmount renders a base-unit amount with the given decimals.
func FormatTokenAmount(value *big.Int, decimals uint8) string {
	if value == nil {
		return "0"
	}
	if decimals == 0 {
		return value.String()
	}
	sign := value.Sign()
	abs := new(big.Int).Abs(value)
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	rat := new(big.Rat).SetFrac(abs, denom)
	text := trimZeros(rat.FloatString(int(decimals)))
	if sign < 0 {
		return "-" + text
	}
	return text
}

func formatAmountString(raw string) string {
	value, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return raw
	}
	return FormatTokenAmount(value, tokenDecimals)
}

func trimZeros(text string) string {
	end := len(text)
	for end > 0 && text[end-1] == '0' {
		end--
	}
	if end > 0 && text[end-1] == '.' {
		end--
	}
	return text[:end]
}
