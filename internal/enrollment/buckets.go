package enrollment

import "strings"

// Bucket is a demographic category that student counts are summed into.
type Bucket int

const (
	BucketWhite Bucket = iota
	BucketBlack
	BucketHispanic
	BucketAsian
	BucketOther
	bucketCount
)

func (b Bucket) String() string {
	switch b {
	case BucketWhite:
		return "white"
	case BucketBlack:
		return "black"
	case BucketHispanic:
		return "hispanic"
	case BucketAsian:
		return "asian"
	case BucketOther:
		return "other"
	default:
		return "unknown"
	}
}

const notSpecified = "Not Specified"

type bucketRule struct {
	match  func(label string) bool
	bucket Bucket
}

func containsAny(subs ...string) func(string) bool {
	return func(label string) bool {
		for _, s := range subs {
			if strings.Contains(label, s) {
				return true
			}
		}
		return false
	}
}

// bucketRules are evaluated in order; the first match wins. A label matching
// none of them (exactly "Not Specified") is excluded from every bucket and
// from the school total.
var bucketRules = []bucketRule{
	{containsAny("White"), BucketWhite},
	{containsAny("Black", "African American"), BucketBlack},
	{containsAny("Hispanic", "Latino"), BucketHispanic},
	{containsAny("Asian"), BucketAsian},
	{func(label string) bool {
		return !strings.Contains(label, "Two or more") && label != notSpecified
	}, BucketOther},
	{containsAny("Two or more"), BucketOther},
}

// Classify maps a race/ethnicity label to its bucket.
// ok is false for labels that are excluded from the totals.
func Classify(label string) (b Bucket, ok bool) {
	for _, rule := range bucketRules {
		if rule.match(label) {
			return rule.bucket, true
		}
	}
	return 0, false
}
