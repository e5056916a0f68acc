package model

import (
	"encoding/json"
	"sort"
	"time"
)

// ValueSet is a deduplicating set of extracted string values.
// Insertion order is not retained; the set serializes as a sorted JSON
// array so that output is stable for diffing and tooling.
type ValueSet struct {
	values map[string]struct{}
}

// NewValueSet returns an empty ValueSet.
func NewValueSet() *ValueSet {
	return &ValueSet{values: make(map[string]struct{})}
}

// Add inserts v into the set. Duplicate insertions are no-ops, so the
// same value extracted from multiple elements or pages collapses to a
// single entry.
func (s *ValueSet) Add(v string) {
	if s.values == nil {
		s.values = make(map[string]struct{})
	}
	s.values[v] = struct{}{}
}

// Contains reports whether v is in the set.
func (s *ValueSet) Contains(v string) bool {
	_, ok := s.values[v]
	return ok
}

// Len returns the number of distinct values in the set.
func (s *ValueSet) Len() int {
	return len(s.values)
}

// Values returns the set members sorted lexicographically.
func (s *ValueSet) Values() []string {
	out := make([]string, 0, len(s.values))
	for v := range s.values {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON serializes the set as a sorted JSON array.
func (s *ValueSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON deserializes a JSON array into the set.
// Needed to read archived results back from the history store.
func (s *ValueSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	s.values = make(map[string]struct{}, len(values))
	for _, v := range values {
		s.values[v] = struct{}{}
	}
	return nil
}

// ResultTable is the output of one crawl job: selector string to
// attribute spec to the set of values extracted for that pair.
//
// The table is pre-populated with an empty set for every
// (selector, attribute) pair declared in the job before any extraction
// runs, so the response shape is deterministic regardless of how many
// elements matched. See NewResultTable.
type ResultTable map[string]map[string]*ValueSet

// NewResultTable builds a table seeded with an empty ValueSet for every
// (selector, attribute) pair in searches.
func NewResultTable(searches []SearchRule) ResultTable {
	table := make(ResultTable, len(searches))
	for _, rule := range searches {
		group, ok := table[rule.Selector]
		if !ok {
			group = make(map[string]*ValueSet, len(rule.Attributes))
			table[rule.Selector] = group
		}
		for _, attr := range rule.Attributes {
			if _, ok := group[attr]; !ok {
				group[attr] = NewValueSet()
			}
		}
	}
	return table
}

// Add inserts value into the bucket for (selector, attr). Buckets are
// created on demand for robustness, but in normal operation every bucket
// already exists because NewResultTable seeded it.
func (t ResultTable) Add(selector, attr, value string) {
	group, ok := t[selector]
	if !ok {
		group = make(map[string]*ValueSet)
		t[selector] = group
	}
	set, ok := group[attr]
	if !ok {
		set = NewValueSet()
		group[attr] = set
	}
	set.Add(value)
}

// CrawlResult bundles the result table with crawl metadata.
// The table alone is the caller-facing response payload; the metadata
// feeds logs, reports, and the history archive.
type CrawlResult struct {
	// Table maps selector to attribute spec to extracted values.
	Table ResultTable `json:"table"`

	// PagesFetched is the number of pages fetched during the crawl.
	PagesFetched int `json:"pages_fetched"`

	// Depth is the deepest breadth-first level fetched, zero for a
	// seed-only crawl.
	Depth int `json:"depth"`

	// Took is the wall-clock duration of the crawl including extraction.
	Took time.Duration `json:"took"`
}
