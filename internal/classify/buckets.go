package classify

import (
	"encoding/json"
	"strings"
)

// Buckets is an insertion-ordered mapping from category to the labels
// classified into it. Buckets are created lazily, so only categories with
// at least one label are present.
type Buckets struct {
	order   []Category
	members map[Category][]string
}

// Bucket is one category together with its labels.
type Bucket struct {
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Groups      []string `json:"groups"`
}

// NewBuckets returns an empty bucket set.
func NewBuckets() *Buckets {
	return &Buckets{members: make(map[Category][]string)}
}

// Categorize classifies every non-blank label. Category keys appear in the
// order they were first seen; labels keep their input order and are stored
// exactly as given, surrounding whitespace included.
func Categorize(labels []string) *Buckets {
	b := NewBuckets()
	for _, label := range labels {
		trimmed := strings.TrimSpace(label)
		if trimmed == "" {
			continue
		}
		b.Add(Classify(trimmed), label)
	}
	return b
}

// Add appends label to the bucket for c, creating the bucket on first use.
func (b *Buckets) Add(c Category, label string) {
	if _, ok := b.members[c]; !ok {
		b.order = append(b.order, c)
	}
	b.members[c] = append(b.members[c], label)
}

// Keys returns categories in first-seen order.
func (b *Buckets) Keys() []Category {
	out := make([]Category, len(b.order))
	copy(out, b.order)
	return out
}

// Get returns the labels in category c.
func (b *Buckets) Get(c Category) []string {
	return b.members[c]
}

// Len is the number of non-empty categories.
func (b *Buckets) Len() int { return len(b.order) }

// Total is the number of labels across all buckets.
func (b *Buckets) Total() int {
	n := 0
	for _, labels := range b.members {
		n += len(labels)
	}
	return n
}

// List returns the buckets in first-seen order with their descriptions.
func (b *Buckets) List() []Bucket {
	out := make([]Bucket, 0, len(b.order))
	for _, c := range b.order {
		out = append(out, Bucket{
			Category:    c,
			Description: Describe(c),
			Groups:      append([]string(nil), b.members[c]...),
		})
	}
	return out
}

// MarshalJSON encodes the buckets as an ordered list.
func (b *Buckets) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.List())
}
