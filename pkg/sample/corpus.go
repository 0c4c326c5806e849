package sample

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/usestring/schemagen-mcp/pkg/contenttype"
)

// Corpus maps group names to their sample records, in document order.
// A corpus is read-only once built.
type Corpus struct {
	groups *orderedmap.OrderedMap[string, []*Value]
}

// NewCorpus returns an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{groups: orderedmap.New[string, []*Value]()}
}

// Add registers a group with its records. Records must be object values.
func (c *Corpus) Add(group string, records ...*Value) {
	if records == nil {
		records = []*Value{}
	}
	c.groups.Set(group, records)
}

// Has reports whether the corpus names group, even if it holds no records.
func (c *Corpus) Has(group string) bool {
	_, ok := c.groups.Get(group)
	return ok
}

// Records returns the records of group.
func (c *Corpus) Records(group string) []*Value {
	records, _ := c.groups.Get(group)
	return records
}

// Names returns the group names in document order.
func (c *Corpus) Names() []string {
	names := make([]string, 0, c.groups.Len())
	for pair := c.groups.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Len returns the number of groups.
func (c *Corpus) Len() int {
	return c.groups.Len()
}

// SampleCount returns the total number of records across all groups.
func (c *Corpus) SampleCount() int {
	n := 0
	for pair := c.groups.Oldest(); pair != nil; pair = pair.Next() {
		n += len(pair.Value)
	}
	return n
}

// NewCorpusFromValue checks that root maps group names to arrays of objects
// and wraps it as a Corpus.
func NewCorpusFromValue(root *Value) (*Corpus, error) {
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object mapping group names to sample arrays", ErrMalformed)
	}

	c := NewCorpus()
	for pair := root.Fields.Oldest(); pair != nil; pair = pair.Next() {
		group, samples := pair.Key, pair.Value
		if samples == nil || samples.Kind != Array {
			return nil, fmt.Errorf("%w: group %q must be an array of samples", ErrMalformed, group)
		}
		for i, rec := range samples.Items {
			if !rec.IsObject() {
				return nil, fmt.Errorf("%w: group %q: sample %d is not an object", ErrMalformed, group, i)
			}
		}
		c.Add(group, samples.Items...)
	}
	return c, nil
}

// ParseCorpus decodes data and wraps it as a Corpus.
func ParseCorpus(data []byte, category contenttype.Category) (*Corpus, error) {
	root, err := Decode(data, category)
	if err != nil {
		return nil, err
	}
	return NewCorpusFromValue(root)
}
