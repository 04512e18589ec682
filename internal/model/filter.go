package model

// CategoryAll is the wildcard category value meaning "no category filter".
const CategoryAll = "all"

// DateBucket is a coarse relative time window for date filtering.
type DateBucket string

const (
	DateBucketNone  DateBucket = ""
	DateBucketToday DateBucket = "today"
	DateBucketWeek  DateBucket = "week"
	DateBucketMonth DateBucket = "month"
	DateBucketYear  DateBucket = "year"
)

// ParseDateBucket maps a raw filter value to a known bucket.
// Values outside the enumeration degrade to DateBucketNone rather than failing.
func ParseDateBucket(v string) DateBucket {
	switch DateBucket(v) {
	case DateBucketToday, DateBucketWeek, DateBucketMonth, DateBucketYear:
		return DateBucket(v)
	default:
		return DateBucketNone
	}
}

// FilterCriteria is the normalized set of optional constraints used to scope
// a document listing. OwnerID is always required; everything else is optional
// and an absent field means "no constraint".
type FilterCriteria struct {
	OwnerID    int64
	Category   string
	SearchText string
	DateBucket DateBucket
}

// HasCategory reports whether a real category constraint is present.
// The "all" value is semantically identical to no category filter.
func (c FilterCriteria) HasCategory() bool {
	return c.Category != "" && c.Category != CategoryAll
}
