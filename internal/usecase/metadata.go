package usecase

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"botadmin-backend/internal/domain"
)

// ParseSkipReasons extracts skip_reasons from a trade's metadata column.
// Malformed or absent metadata yields nil, never an error: the column is
// bot-written and presentation must not break on it.
func ParseSkipReasons(metadata json.RawMessage) []domain.SkipReason {
	if len(metadata) == 0 {
		return nil
	}
	var meta domain.TradeMetadata
	if err := json.Unmarshal(metadata, &meta); err != nil {
		return nil
	}
	return meta.SkipReasons
}

// HumanizeReasonType turns a snake_case reason code into a display label,
// e.g. "price_too_high" -> "Price Too High".
func HumanizeReasonType(reasonType string) string {
	words := strings.Split(reasonType, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ReasonDetail renders the threshold/actual pair of one skip reason.
// Missing values render as N/A.
func ReasonDetail(d *domain.SkipReasonDetails) string {
	threshold := "N/A"
	actual := "N/A"
	if d != nil {
		if d.Threshold != nil {
			threshold = formatFloat(*d.Threshold)
		}
		switch {
		case d.ActualPrice != nil:
			actual = formatFloat(*d.ActualPrice)
		case d.ActualSpread != nil:
			actual = formatFloat(*d.ActualSpread)
		}
	}
	return fmt.Sprintf("threshold: %s, actual: %s", threshold, actual)
}

// SummarizeSkipReasons builds the inline cell text for a SKIP trade: empty
// for no reasons, the full single reason, or a count when several apply.
func SummarizeSkipReasons(reasons []domain.SkipReason) string {
	switch len(reasons) {
	case 0:
		return ""
	case 1:
		r := reasons[0]
		return fmt.Sprintf("%s (%s)", HumanizeReasonType(r.Type), ReasonDetail(r.Details))
	default:
		return fmt.Sprintf("%d reasons", len(reasons))
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
