package cardfolio

import (
	"fmt"
	"strings"
)

// Bucket is a display-grouping category derived from a raw rarity label.
//
// Buckets are ordered, the order is the display order of the groups.
type Bucket int

const (
	BucketPSEC Bucket = iota
	BucketSP
	BucketSEC
	BucketPSR
	BucketSR
	BucketPR
	BucketR
	BucketPL
	BucketL
	BucketPUC
	BucketPC
	BucketOthers

	numBuckets = iota
)

var bucketNames = [numBuckets]string{
	"P-SEC", "SP", "SEC", "P-SR", "SR", "P-R", "R", "P-L", "L", "P-UC", "P-C", "OTHERS",
}

var bucketHeaders = [numBuckets]string{
	"SEC PARALLEL",
	"SPECIAL / MANGA",
	"SECRET RARE",
	"SR PARALLEL",
	"SUPER RARE",
	"RARE PARALLEL",
	"RARE",
	"LEADER PARALLEL",
	"LEADER",
	"UNCOMMON PARALLEL",
	"COMMON PARALLEL",
	"PROMOS & OTHERS",
}

// Buckets returns every bucket in display order.
func Buckets() []Bucket {
	list := make([]Bucket, numBuckets)
	for i := range list {
		list[i] = Bucket(i)
	}
	return list
}

// String returns the bucket short name, e.g. "P-SEC".
func (b Bucket) String() string {
	if b < 0 || int(b) >= numBuckets {
		return fmt.Sprintf("Bucket(%d)", int(b))
	}
	return bucketNames[b]
}

// Header returns the human friendly title of the bucket.
func (b Bucket) Header() string {
	if b < 0 || int(b) >= numBuckets {
		return b.String()
	}
	return bucketHeaders[b]
}

// ParseBucket parses a bucket short name, case insensitive.
func ParseBucket(s string) (Bucket, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range bucketNames {
		if name == u {
			return Bucket(i), nil
		}
	}
	return BucketOthers, fmt.Errorf("unknown rarity bucket %q", s)
}

// exactBuckets are the labels that map 1:1 to a bucket of the same name.
var exactBuckets = map[string]Bucket{
	"P-SR": BucketPSR,
	"P-R":  BucketPR,
	"P-L":  BucketPL,
	"P-UC": BucketPUC,
	"P-C":  BucketPC,
	"SEC":  BucketSEC,
	"SR":   BucketSR,
	"R":    BucketR,
}

// Classify maps a raw rarity label to its bucket. It never fails: any label
// it does not recognize belongs to BucketOthers.
//
// Rules are applied in order and the first match wins, labels overlap so the
// order matters.
func Classify(rarity string) Bucket {
	r := strings.ToUpper(rarity)
	if r == "P-SEC" {
		return BucketPSEC
	}
	for _, marker := range []string{"SP", "MANGA", "COMIC", "SUPER"} {
		if strings.Contains(r, marker) {
			return BucketSP
		}
	}
	if b, ok := exactBuckets[r]; ok {
		return b
	}
	// Commons and uncommons are folded into the catch-all.
	if r == "UC" || r == "C" {
		return BucketOthers
	}
	if r == "L" || strings.Contains(r, "LEADER") {
		return BucketL
	}
	return BucketOthers
}

// BucketSet is a set of buckets. Its zero value is the empty set.
type BucketSet uint16

// AllBuckets contains every bucket.
const AllBuckets BucketSet = 1<<numBuckets - 1

// NewBucketSet returns the set of the given buckets.
func NewBucketSet(buckets ...Bucket) BucketSet {
	var s BucketSet
	for _, b := range buckets {
		s = s.With(b)
	}
	return s
}

func (s BucketSet) Has(b Bucket) bool          { return s&(1<<uint(b)) != 0 }
func (s BucketSet) With(b Bucket) BucketSet    { return s | 1<<uint(b) }
func (s BucketSet) Without(b Bucket) BucketSet { return s &^ (1 << uint(b)) }

// Toggle returns the set with b added if it was missing, removed otherwise.
func (s BucketSet) Toggle(b Bucket) BucketSet {
	if s.Has(b) {
		return s.Without(b)
	}
	return s.With(b)
}

// Buckets lists the buckets of the set in display order.
func (s BucketSet) Buckets() []Bucket {
	var list []Bucket
	for _, b := range Buckets() {
		if s.Has(b) {
			list = append(list, b)
		}
	}
	return list
}
