package usecase

import (
	"fmt"
	"math"
	"strings"
)

var cryptoShortNames = map[string]string{
	"Bitcoin":  "btc",
	"Ethereum": "eth",
	"Solana":   "sol",
	"XRP":      "xrp",
}

var intervalShortNames = map[string]string{
	"5 minut":   "5m",
	"15 minut":  "15m",
	"1 godzina": "1h",
	"4 godziny": "4h",
}

// CryptoShort maps an asset display name to its slug fragment. Unknown assets
// fall back to the lowercased three-letter prefix.
func CryptoShort(crypto string) string {
	if short, ok := cryptoShortNames[crypto]; ok {
		return short
	}
	lower := strings.ToLower(crypto)
	if len(lower) > 3 {
		return lower[:3]
	}
	return lower
}

// IntervalShort maps an interval display label to the market interval code.
// Unknown labels pass through verbatim.
func IntervalShort(interval string) string {
	if short, ok := intervalShortNames[interval]; ok {
		return short
	}
	return interval
}

// BaseSeriesSlug builds the Polymarket up/down series slug for an asset and
// interval, e.g. "btc-updown-5m".
func BaseSeriesSlug(crypto, interval string) string {
	return fmt.Sprintf("%s-updown-%s", CryptoShort(crypto), IntervalShort(interval))
}

// NameInputs are the operator selections instance names derive from.
type NameInputs struct {
	OwnerID           string
	Crypto            string
	Interval          string
	Strategy          string
	MomentumSec       int
	MomentumThreshold float64
}

// InstanceName renders the deterministic instance name, e.g.
// "u1--btc-5m-lax-d20-25--7". Sequence is the caller-supplied next bot id.
func InstanceName(in NameInputs, sequence int64) string {
	return fmt.Sprintf("%s--%s-%s-%s-d%d-%d--%d",
		in.OwnerID,
		CryptoShort(in.Crypto),
		IntervalShort(in.Interval),
		strings.ToLower(in.Strategy),
		in.MomentumSec,
		int(math.Round(in.MomentumThreshold*100)),
		sequence,
	)
}

// MissingNameInputs lists the selections still needed before a name can be
// generated. Labels match what the form shows the operator.
func MissingNameInputs(in NameInputs) []string {
	var missing []string
	if in.Crypto == "" {
		missing = append(missing, "Crypto")
	}
	if in.Interval == "" {
		missing = append(missing, "Interwał")
	}
	if in.Strategy == "" {
		missing = append(missing, "Strategia")
	}
	return missing
}
