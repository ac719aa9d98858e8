package usecase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"botadmin-backend/internal/domain"
)

func TestParseSkipReasons(t *testing.T) {
	meta := json.RawMessage(`{"skip_reasons":[{"type":"price_too_high","details":{"threshold":0.65,"actual_price":0.72}}]}`)
	reasons := ParseSkipReasons(meta)
	if assert.Len(t, reasons, 1) {
		assert.Equal(t, "price_too_high", reasons[0].Type)
		assert.Equal(t, 0.65, *reasons[0].Details.Threshold)
		assert.Equal(t, 0.72, *reasons[0].Details.ActualPrice)
	}

	assert.Nil(t, ParseSkipReasons(nil))
	assert.Nil(t, ParseSkipReasons(json.RawMessage(`not json`)))
	assert.Nil(t, ParseSkipReasons(json.RawMessage(`{"other":1}`)))
}

func TestHumanizeReasonType(t *testing.T) {
	assert.Equal(t, "Price Too High", HumanizeReasonType("price_too_high"))
	assert.Equal(t, "Spread Too Wide", HumanizeReasonType("spread_too_wide"))
	assert.Equal(t, "Warmup", HumanizeReasonType("warmup"))
}

func TestReasonDetail(t *testing.T) {
	threshold := 0.65
	price := 0.72
	spread := 0.08

	assert.Equal(t, "threshold: 0.65, actual: 0.72",
		ReasonDetail(&domain.SkipReasonDetails{Threshold: &threshold, ActualPrice: &price}))
	assert.Equal(t, "threshold: 0.65, actual: 0.08",
		ReasonDetail(&domain.SkipReasonDetails{Threshold: &threshold, ActualSpread: &spread}))
	assert.Equal(t, "threshold: N/A, actual: N/A", ReasonDetail(nil))
	assert.Equal(t, "threshold: N/A, actual: N/A", ReasonDetail(&domain.SkipReasonDetails{}))
}

func TestSummarizeSkipReasons(t *testing.T) {
	threshold := 0.65
	price := 0.72
	single := []domain.SkipReason{
		{Type: "price_too_high", Details: &domain.SkipReasonDetails{Threshold: &threshold, ActualPrice: &price}},
	}

	assert.Equal(t, "", SummarizeSkipReasons(nil))
	assert.Equal(t, "Price Too High (threshold: 0.65, actual: 0.72)", SummarizeSkipReasons(single))
	assert.Equal(t, "3 reasons", SummarizeSkipReasons(make([]domain.SkipReason, 3)))
}
