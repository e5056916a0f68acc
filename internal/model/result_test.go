package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

// TestValueSet tests the deduplicating set.
func TestValueSet(t *testing.T) {
	t.Parallel()

	t.Run("deduplicates values", func(t *testing.T) {
		t.Parallel()

		set := NewValueSet()
		set.Add("a")
		set.Add("b")
		set.Add("a")

		if set.Len() != 2 {
			t.Errorf("Len() = %d, want 2", set.Len())
		}
		if !set.Contains("a") || !set.Contains("b") {
			t.Errorf("missing members: %v", set.Values())
		}
		if set.Contains("c") {
			t.Error("Contains reported an absent member")
		}
	})

	t.Run("Values returns sorted members", func(t *testing.T) {
		t.Parallel()

		set := NewValueSet()
		set.Add("zebra")
		set.Add("alpha")
		set.Add("mango")

		want := []string{"alpha", "mango", "zebra"}
		if got := set.Values(); !reflect.DeepEqual(got, want) {
			t.Errorf("Values() = %v, want %v", got, want)
		}
	})

	t.Run("marshals as a sorted JSON array", func(t *testing.T) {
		t.Parallel()

		set := NewValueSet()
		set.Add("b")
		set.Add("a")

		data, err := json.Marshal(set)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if got := string(data); got != `["a","b"]` {
			t.Errorf("marshal = %s", got)
		}
	})

	t.Run("round-trips through JSON", func(t *testing.T) {
		t.Parallel()

		var set ValueSet
		if err := json.Unmarshal([]byte(`["x","y"]`), &set); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if set.Len() != 2 || !set.Contains("x") || !set.Contains("y") {
			t.Errorf("unexpected members: %v", set.Values())
		}
	})

	t.Run("zero value accepts Add", func(t *testing.T) {
		t.Parallel()

		var set ValueSet
		set.Add("v")
		if !set.Contains("v") {
			t.Error("zero-value set dropped the inserted value")
		}
	})
}

// TestResultTable tests the pre-seeded result shape.
func TestResultTable(t *testing.T) {
	t.Parallel()

	t.Run("seeds an empty set for every declared pair", func(t *testing.T) {
		t.Parallel()

		table := NewResultTable([]SearchRule{
			{Selector: "a", Attributes: []string{"href", "TextContent"}},
			{Selector: "h1", Attributes: []string{"TextContent"}},
		})

		for _, pair := range [][2]string{
			{"a", "href"},
			{"a", "TextContent"},
			{"h1", "TextContent"},
		} {
			set, ok := table[pair[0]][pair[1]]
			if !ok || set == nil {
				t.Errorf("missing bucket for (%s, %s)", pair[0], pair[1])
				continue
			}
			if set.Len() != 0 {
				t.Errorf("bucket (%s, %s) not empty", pair[0], pair[1])
			}
		}
	})

	t.Run("merges repeated selectors into one group", func(t *testing.T) {
		t.Parallel()

		table := NewResultTable([]SearchRule{
			{Selector: "a", Attributes: []string{"href"}},
			{Selector: "a", Attributes: []string{"TextContent"}},
		})

		if len(table) != 1 {
			t.Fatalf("expected 1 selector group, got %d", len(table))
		}
		if len(table["a"]) != 2 {
			t.Errorf("expected 2 buckets under a, got %d", len(table["a"]))
		}
	})

	t.Run("Add inserts into the right bucket", func(t *testing.T) {
		t.Parallel()

		table := NewResultTable([]SearchRule{
			{Selector: "a", Attributes: []string{"href"}},
		})
		table.Add("a", "href", "/x")
		table.Add("a", "href", "/x")

		if got := table["a"]["href"].Len(); got != 1 {
			t.Errorf("expected 1 deduplicated value, got %d", got)
		}
	})

	t.Run("Add creates missing buckets on demand", func(t *testing.T) {
		t.Parallel()

		table := make(ResultTable)
		table.Add("p", "TextContent", "hi")

		if !table["p"]["TextContent"].Contains("hi") {
			t.Error("value not inserted into on-demand bucket")
		}
	})
}
