package models

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

// FormatUnits renders amount with the given number of decimals, always
// keeping at least one fractional digit ("1.0", "0.05").
func FormatUnits(amount *big.Int, decimals int) string {
	if amount == nil {
		return "0.0"
	}
	sign := ""
	abs := new(big.Int).Set(amount)
	if abs.Sign() < 0 {
		sign = "-"
		abs.Neg(abs)
	}
	base := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(abs, base, new(big.Int))
	fraction := frac.String()
	if pad := decimals - len(fraction); pad > 0 {
		fraction = strings.Repeat("0", pad) + fraction
	}
	fraction = strings.TrimRight(fraction, "0")
	if fraction == "" {
		fraction = "0"
	}
	return sign + whole.String() + "." + fraction
}

// FormatEther renders a wei amount in ether.
func FormatEther(wei *big.Int) string {
	return FormatUnits(wei, 18)
}

// GweiToWei converts whole gwei to wei.
func GweiToWei(gwei int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(gwei), big.NewInt(params.GWei))
}

// WeiToGweiRounded converts wei to gwei, rounding half up.
func WeiToGweiRounded(wei *big.Int) int64 {
	if wei == nil {
		return 0
	}
	gwei := big.NewInt(params.GWei)
	half := new(big.Int).Div(gwei, big.NewInt(2))
	rounded := new(big.Int).Add(wei, half)
	return rounded.Div(rounded, gwei).Int64()
}

// DeploymentCost is gas * gasPrice.
func DeploymentCost(gas uint64, gasPrice *big.Int) *big.Int {
	return new(big.Int).Mul(new(big.Int).SetUint64(gas), gasPrice)
}
