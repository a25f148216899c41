package service

import "github.com/shopspring/decimal"

// ---------------------------------------------------------------------------
// PricingBucket – MSRP tiers driving term and down payment guidance
// ---------------------------------------------------------------------------

// PricingBucket is a named price tier. MinPrice and MaxPrice are inclusive.
type PricingBucket struct {
	ID               string
	Name             string
	MinPrice         decimal.Decimal
	MaxPrice         decimal.Decimal
	BaseDownPayment  decimal.Decimal
	RecommendedTerms []int
	PopularTerm      int
	Features         []string
}

// Contains reports whether price falls inside the bucket's inclusive range.
func (b PricingBucket) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(b.MinPrice) && price.LessThanOrEqual(b.MaxPrice)
}

// DefaultPricingBuckets partitions the supported MSRP range in ascending order.
func DefaultPricingBuckets() []PricingBucket {
	return []PricingBucket{
		{
			ID:               "economy",
			Name:             "Economy",
			MinPrice:         decimal.NewFromInt(20000),
			MaxPrice:         decimal.NewFromInt(28000),
			BaseDownPayment:  decimal.NewFromInt(2000),
			RecommendedTerms: []int{48, 60, 72},
			PopularTerm:      60,
			Features:         []string{"Low monthly payments", "Great fuel economy", "Reliable transportation"},
		},
		{
			ID:               "midsize",
			Name:             "Mid-Size",
			MinPrice:         decimal.NewFromInt(28001),
			MaxPrice:         decimal.NewFromInt(38000),
			BaseDownPayment:  decimal.NewFromInt(3000),
			RecommendedTerms: []int{48, 60, 72},
			PopularTerm:      60,
			Features:         []string{"Balanced performance", "Family-friendly", "Advanced safety features"},
		},
		{
			ID:               "premium",
			Name:             "Premium",
			MinPrice:         decimal.NewFromInt(38001),
			MaxPrice:         decimal.NewFromInt(55000),
			BaseDownPayment:  decimal.NewFromInt(5000),
			RecommendedTerms: []int{48, 60, 72, 84},
			PopularTerm:      72,
			Features:         []string{"Premium comfort", "Advanced technology", "Superior performance"},
		},
		{
			ID:               "luxury",
			Name:             "Luxury",
			MinPrice:         decimal.NewFromInt(55001),
			MaxPrice:         decimal.NewFromInt(100000),
			BaseDownPayment:  decimal.NewFromInt(8000),
			RecommendedTerms: []int{60, 72, 84},
			PopularTerm:      72,
			Features:         []string{"Luxury amenities", "Cutting-edge technology", "Premium materials"},
		},
	}
}

// PricingBucketClassifier assigns vehicles to pricing buckets.
type PricingBucketClassifier struct {
	buckets []PricingBucket
}

// NewPricingBucketClassifier builds a classifier over the given buckets. The
// first bucket is the fallback for prices outside every range.
func NewPricingBucketClassifier(buckets []PricingBucket) *PricingBucketClassifier {
	if len(buckets) == 0 {
		buckets = DefaultPricingBuckets()
	}
	return &PricingBucketClassifier{buckets: buckets}
}

// Buckets returns the configured buckets in order.
func (c *PricingBucketClassifier) Buckets() []PricingBucket {
	out := make([]PricingBucket, len(c.buckets))
	copy(out, c.buckets)
	return out
}

// Classify returns the first bucket whose range contains price. When no range
// matches it still returns the first bucket, with inRange=false so callers can
// surface that the price is outside the supported range.
func (c *PricingBucketClassifier) Classify(price decimal.Decimal) (bucket PricingBucket, inRange bool) {
	for _, b := range c.buckets {
		if b.Contains(price) {
			return b, true
		}
	}
	return c.buckets[0], false
}

// ---------------------------------------------------------------------------
// Down payment guidance
// ---------------------------------------------------------------------------

// BucketRecommendation is credit-tier guidance for a bucket.
type BucketRecommendation struct {
	AdjustedDownPayment decimal.Decimal
	Recommendations     []string
}

var (
	excellentCreditFactor = decimal.RequireFromString("0.8")
	goodCreditFactor      = decimal.RequireFromString("0.9")
	weakCreditFactor      = decimal.RequireFromString("1.3")
	minimumReducedDown    = decimal.NewFromInt(1000)
)

const (
	msgExcellentCredit = "Excellent credit! You qualify for reduced down payment."
	msgGoodCredit      = "Good credit score allows for flexible terms."
	msgWeakCredit      = "Consider a larger down payment for better rates."
)

// Recommend scales the bucket's base down payment by credit tier and rounds to
// whole currency units.
//
//	score >= 750  max(1000, base * 0.8)
//	score >= 700  base * 0.9
//	score <  600  base * 1.3
//	otherwise     base
func (c *PricingBucketClassifier) Recommend(bucket PricingBucket, creditScore int) BucketRecommendation {
	down := bucket.BaseDownPayment
	var recs []string

	switch {
	case creditScore >= 750:
		down = decimal.Max(minimumReducedDown, down.Mul(excellentCreditFactor))
		recs = append(recs, msgExcellentCredit)
	case creditScore >= 700:
		down = down.Mul(goodCreditFactor)
		recs = append(recs, msgGoodCredit)
	case creditScore < 600:
		down = down.Mul(weakCreditFactor)
		recs = append(recs, msgWeakCredit)
	}

	return BucketRecommendation{
		AdjustedDownPayment: down.Round(0),
		Recommendations:     recs,
	}
}
