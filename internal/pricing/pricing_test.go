package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	conference, ok := Price(PackageConference)
	assert.True(t, ok)
	assert.True(t, conference.Equal(decimal.NewFromInt(750)))

	premium, ok := Price(PackagePremium)
	assert.True(t, ok)
	assert.True(t, premium.Equal(decimal.NewFromInt(1150)))

	_, ok = Price(Package("vip"))
	assert.False(t, ok)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(PackageConference))
	assert.True(t, Valid(PackagePremium))
	assert.False(t, Valid(Package("")))
	assert.False(t, Valid(Package("Conference")))
}
