package pricing

import (
	"github.com/shopspring/decimal"
)

// Package is one of the fixed registration tiers.
type Package string

const (
	PackageConference Package = "conference"
	PackagePremium    Package = "premium"
)

var packagePrices = map[Package]decimal.Decimal{
	PackageConference: decimal.NewFromInt(750),
	PackagePremium:    decimal.NewFromInt(1150),
}

func Valid(p Package) bool {
	_, ok := packagePrices[p]
	return ok
}

// Price returns the default price of a package. The second return is false
// for unknown packages.
func Price(p Package) (decimal.Decimal, bool) {
	price, ok := packagePrices[p]
	return price, ok
}
