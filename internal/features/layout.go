package features

import "strconv"

// GridUnits is the width of a row.
const GridUnits = 12

// MaxColumnsPerRow caps how many columns share a row before wrapping.
const MaxColumnsPerRow = 4

// Column places one item on the grid.
type Column struct {
	Span int
	Item Item
}

// ClassName returns the CSS classes of the column.
func (c Column) ClassName() string {
	return "col col--" + strconv.Itoa(c.Span)
}

// Grid is the computed layout, columns in input order.
type Grid struct {
	Columns []Column
}

// Layout assigns every item an equal span of 12/min(n, 4) grid units.
// Three items yield three span-4 columns; five items wrap into a second row.
func Layout(items []Item) Grid {
	if len(items) == 0 {
		return Grid{}
	}
	span := GridUnits / min(len(items), MaxColumnsPerRow)
	cols := make([]Column, len(items))
	for i, it := range items {
		cols[i] = Column{Span: span, Item: it}
	}
	return Grid{Columns: cols}
}
