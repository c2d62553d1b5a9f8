// Package cart implements the in-progress bakery order for one user.
package cart

// Line is a single order position. Prices are integer minor currency units.
type Line struct {
	ItemID    string
	Name      string
	UnitPrice int64
	Quantity  int
}

// Subtotal returns the cost of this line.
func (l Line) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Cart is an ordered collection of lines, at most one per item id.
// A Cart is owned by exactly one session and is not safe for concurrent use;
// the owning session serializes access.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem increments the quantity of an existing line with the same item id,
// or appends a new line with quantity 1. Insertion order is preserved.
func (c *Cart) AddItem(itemID, name string, unitPrice int64) {
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines[i].Quantity++
			return
		}
	}

	c.lines = append(c.lines, Line{
		ItemID:    itemID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  1,
	})
}

// Total recomputes the order total from the current lines.
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.Subtotal()
	}

	return total
}

// Clear removes all lines.
func (c *Cart) Clear() {
	c.lines = nil
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}
