package ranking

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

func item(id string, ranking int, seq uint64) types.Item {
	return types.Item{ItemID: id, Name: id, Ranking: ranking, Seq: seq}
}

func TestOrder(t *testing.T) {
	tests := []struct {
		name  string
		items []types.Item
		want  []string
	}{
		{
			name:  "empty input",
			items: nil,
			want:  []string{},
		},
		{
			name: "descending rankings keep insertion order",
			items: []types.Item{
				item("shining", 10, 1), item("get-out", 9, 2),
				item("hereditary", 8, 3), item("conjuring", 7, 4),
			},
			want: []string{"shining", "get-out", "hereditary", "conjuring"},
		},
		{
			name: "ascending input is reversed",
			items: []types.Item{
				item("a", 1, 1), item("b", 5, 2), item("c", 10, 3),
			},
			want: []string{"c", "b", "a"},
		},
		{
			name: "ties broken by insertion order",
			items: []types.Item{
				item("late", 8, 7), item("top", 9, 9), item("early", 8, 2),
			},
			want: []string{"top", "early", "late"},
		},
		{
			name: "duplicate seq falls back to id",
			items: []types.Item{
				item("z", 6, 1), item("m", 6, 1),
			},
			want: []string{"m", "z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Order(tt.items)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Order() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOrderIsIdempotentAndPure(t *testing.T) {
	items := []types.Item{
		item("x", 3, 3), item("y", 7, 1), item("z", 3, 2),
	}
	input := append([]types.Item(nil), items...)

	first := Order(items)
	second := Order(items)

	assert.Equal(t, first, second)
	assert.Equal(t, input, items, "input must not be reordered")
}

func TestPositions(t *testing.T) {
	items := []types.Item{item("b", 4, 2), item("a", 9, 1)}
	got := Positions(items)

	want := []types.Ranked{
		{Position: 1, Item: items[1]},
		{Position: 2, Item: items[0]},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Positions() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompare(t *testing.T) {
	assert.Negative(t, Compare(item("a", 10, 5), item("b", 1, 1)))
	assert.Positive(t, Compare(item("a", 5, 5), item("b", 5, 1)))
	assert.Zero(t, Compare(item("a", 5, 5), item("a", 5, 5)))
}
