// Package paginate decides how many fixed-size items fit on a page and
// splits an ordered list into page groups. Items are never split across
// pages and no page holds more than the planned number of items.
package paginate

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidArea is returned for non-positive page or item sizes.
	ErrInvalidArea = errors.New("invalid area")
	// ErrFootprintTooLarge is returned when a single item cannot fit a page.
	ErrFootprintTooLarge = errors.New("item footprint exceeds usable page area")
)

// Footprint is the page area one item occupies. A zero Width means the
// item adapts to the column width.
type Footprint struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Request describes a page and the items to place on it. All lengths use
// the same unit.
type Request struct {
	UsableWidth  float64   `json:"usableWidth"` // zero means unconstrained
	UsableHeight float64   `json:"usableHeight"`
	Footprint    Footprint `json:"footprint"`
	Columns      int       `json:"columns"`
	// Requested is the caller's preferred items per page. Values above
	// what fits are clamped; zero or negative means as many as fit.
	Requested int `json:"requested"`
}

// Layout is a computed page grid. The cell is never smaller than the item
// footprint.
type Layout struct {
	ItemsPerPage int     `json:"itemsPerPage"`
	Capacity     int     `json:"capacity"` // most items that physically fit
	Rows         int     `json:"rows"`
	Cols         int     `json:"cols"`
	CellWidth    float64 `json:"cellWidth"`
	CellHeight   float64 `json:"cellHeight"`
}

// Plan computes the page layout for r.
//
// Columns that would not fit the usable width are dropped first. Then
// capacity = floor(usableHeight / footprintHeight) × columns, and the
// items per page are the requested count clamped to [1, capacity].
// When not even one item fits, Plan returns ErrFootprintTooLarge rather
// than clamping up to 1, since that single item would overflow its cell.
func Plan(r Request) (Layout, error) {
	if r.UsableHeight <= 0 || r.UsableWidth < 0 {
		return Layout{}, fmt.Errorf("%w: usable page %vx%v", ErrInvalidArea, r.UsableWidth, r.UsableHeight)
	}
	if r.Footprint.Height <= 0 || r.Footprint.Width < 0 {
		return Layout{}, fmt.Errorf("%w: footprint %vx%v", ErrInvalidArea, r.Footprint.Width, r.Footprint.Height)
	}

	cols := r.Columns
	if cols < 1 {
		cols = 1
	}
	if r.UsableWidth > 0 && r.Footprint.Width > 0 {
		fit := int(math.Floor(r.UsableWidth / r.Footprint.Width))
		if fit < 1 {
			return Layout{}, fmt.Errorf("%w: width %v > %v", ErrFootprintTooLarge, r.Footprint.Width, r.UsableWidth)
		}
		if cols > fit {
			cols = fit
		}
	}

	rowsFit := int(math.Floor(r.UsableHeight / r.Footprint.Height))
	if rowsFit < 1 {
		return Layout{}, fmt.Errorf("%w: height %v > %v", ErrFootprintTooLarge, r.Footprint.Height, r.UsableHeight)
	}

	l := Layout{
		Capacity:   rowsFit * cols,
		Cols:       cols,
		CellHeight: r.Footprint.Height,
		CellWidth:  r.Footprint.Width,
	}
	if r.UsableWidth > 0 {
		l.CellWidth = r.UsableWidth / float64(cols)
	}

	l.ItemsPerPage = l.Capacity
	if r.Requested > 0 && r.Requested < l.Capacity {
		l.ItemsPerPage = r.Requested
	}
	l.Rows = (l.ItemsPerPage + cols - 1) / cols
	return l, nil
}

// Cell returns the row and column of the slot-th item on a page, filling
// rows left to right from the top.
func (l Layout) Cell(slot int) (row, col int) {
	if l.Cols < 1 {
		return slot, 0
	}
	return slot / l.Cols, slot % l.Cols
}

// Offset returns the top-left corner of a slot relative to the top-left
// corner of the usable area, with y growing downward.
func (l Layout) Offset(slot int) (x, y float64) {
	row, col := l.Cell(slot)
	return float64(col) * l.CellWidth, float64(row) * l.CellHeight
}

// PageCount returns how many pages n items need.
func (l Layout) PageCount(n int) int {
	if n <= 0 || l.ItemsPerPage <= 0 {
		return 0
	}
	return (n + l.ItemsPerPage - 1) / l.ItemsPerPage
}

// Pages slices items into consecutive groups of at most perPage. The last
// group may be shorter. A non-positive perPage is treated as 1.
func Pages[T any](items []T, perPage int) [][]T {
	if perPage < 1 {
		perPage = 1
	}
	pages := make([][]T, 0, (len(items)+perPage-1)/perPage)
	for start := 0; start < len(items); start += perPage {
		end := min(start+perPage, len(items))
		pages = append(pages, items[start:end:end])
	}
	return pages
}
