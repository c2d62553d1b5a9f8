package cart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCart_AddItemMergesByID(t *testing.T) {
	c := New()

	c.AddItem("2", "Эклеры (набор 6 шт.)", 800)
	c.AddItem("2", "Эклеры (набор 6 шт.)", 800)
	c.AddItem("3", "Макаронс (набор 12 шт.)", 1200)

	lines := c.Lines()
	require.Len(t, lines, 2)
	require.Equal(t, "2", lines[0].ItemID)
	require.Equal(t, 2, lines[0].Quantity)
	require.Equal(t, "3", lines[1].ItemID)
	require.Equal(t, 1, lines[1].Quantity)
	require.Equal(t, int64(2800), c.Total())
}

func TestCart_MergeLaw(t *testing.T) {
	c := New()
	calls := map[string]int{"a": 3, "b": 1, "c": 5}
	sequence := []string{"a", "b", "a", "c", "c", "c", "a", "c", "c"}

	for _, id := range sequence {
		c.AddItem(id, "item "+id, 100)
	}

	lines := c.Lines()
	require.Len(t, lines, len(calls))
	for _, line := range lines {
		require.Equal(t, calls[line.ItemID], line.Quantity, "quantity for %s", line.ItemID)
	}
}

func TestCart_TotalTracksAdds(t *testing.T) {
	c := New()
	require.Equal(t, int64(0), c.Total())

	prev := c.Total()
	c.AddItem("1", "Торт 'Наполеон'", 1500)
	require.Equal(t, prev+1500, c.Total())

	prev = c.Total()
	c.AddItem("1", "Торт 'Наполеон'", 1500)
	require.Equal(t, prev+1500, c.Total())

	prev = c.Total()
	c.AddItem("4", "Чизкейк", 900)
	require.Equal(t, prev+900, c.Total())
}

func TestCart_InsertionOrderPreserved(t *testing.T) {
	c := New()
	ids := []string{"4", "1", "3", "2"}
	for _, id := range ids {
		c.AddItem(id, "item "+id, 10)
	}

	// Re-adding an early item must not move it.
	c.AddItem("3", "item 3", 10)

	lines := c.Lines()
	for i, id := range ids {
		require.Equal(t, id, lines[i].ItemID)
	}
}

func TestCart_Clear(t *testing.T) {
	c := New()
	c.AddItem("1", "Торт 'Наполеон'", 1500)
	require.False(t, c.IsEmpty())

	c.Clear()
	require.True(t, c.IsEmpty())
	require.Equal(t, int64(0), c.Total())
	require.Empty(t, c.Lines())

	// Cart stays usable after clearing.
	c.AddItem("2", "Эклеры (набор 6 шт.)", 800)
	require.Equal(t, int64(800), c.Total())
}
