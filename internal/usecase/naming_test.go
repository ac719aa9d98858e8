package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCryptoShort(t *testing.T) {
	assert.Equal(t, "btc", CryptoShort("Bitcoin"))
	assert.Equal(t, "eth", CryptoShort("Ethereum"))
	assert.Equal(t, "sol", CryptoShort("Solana"))
	assert.Equal(t, "xrp", CryptoShort("XRP"))
	assert.Equal(t, "dog", CryptoShort("Dogecoin"))
	assert.Equal(t, "ab", CryptoShort("AB"))
}

func TestIntervalShort(t *testing.T) {
	assert.Equal(t, "5m", IntervalShort("5 minut"))
	assert.Equal(t, "15m", IntervalShort("15 minut"))
	assert.Equal(t, "1h", IntervalShort("1 godzina"))
	assert.Equal(t, "4h", IntervalShort("4 godziny"))
	assert.Equal(t, "2h", IntervalShort("2h"))
}

func TestBaseSeriesSlug(t *testing.T) {
	assert.Equal(t, "btc-updown-5m", BaseSeriesSlug("Bitcoin", "5 minut"))
	assert.Equal(t, "eth-updown-1h", BaseSeriesSlug("Ethereum", "1 godzina"))
}

func TestInstanceName(t *testing.T) {
	in := NameInputs{
		OwnerID:           "u1",
		Crypto:            "Bitcoin",
		Interval:          "5 minut",
		Strategy:          "LAX",
		MomentumSec:       20,
		MomentumThreshold: 0.25,
	}
	assert.Equal(t, "u1--btc-5m-lax-d20-25--7", InstanceName(in, 7))
}

func TestInstanceNameRoundsThreshold(t *testing.T) {
	in := NameInputs{
		OwnerID:           "u2",
		Crypto:            "Solana",
		Interval:          "15 minut",
		Strategy:          "strict",
		MomentumSec:       45,
		MomentumThreshold: 0.155,
	}
	// 0.155*100 rounds to 16
	assert.Equal(t, "u2--sol-15m-strict-d45-16--1", InstanceName(in, 1))
}

func TestMissingNameInputs(t *testing.T) {
	assert.Nil(t, MissingNameInputs(NameInputs{Crypto: "Bitcoin", Interval: "5 minut", Strategy: "lax"}))

	missing := MissingNameInputs(NameInputs{Interval: "5 minut"})
	assert.Equal(t, []string{"Crypto", "Strategia"}, missing)

	missing = MissingNameInputs(NameInputs{})
	assert.Equal(t, []string{"Crypto", "Interwał", "Strategia"}, missing)
}
