package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GroupBy selects the report hierarchy.
type GroupBy string

const (
	// GroupByCategory is a flat summary keyed by category name.
	GroupByCategory GroupBy = "category"
	// GroupByPersonCategory nests category summaries under the person the
	// expense is billed to.
	GroupByPersonCategory GroupBy = "person-category"
	// GroupByPersonCategoryMovement additionally keeps the raw movement rows
	// under each (person, category) bucket, for the printable detail report.
	GroupByPersonCategoryMovement GroupBy = "person-category-movement"
)

// Fallback labels for rows missing the optional grouping fields.
const (
	NoCategoryLabel = "Sin categoría"
	NoPersonLabel   = "Sin asignar"
)

// ReportGroup is one node of a grouped report. Leaf category groups carry the
// category's icon and color; in movement mode they also carry the raw rows.
type ReportGroup struct {
	Key       string
	Icon      string
	Color     string
	Count     int
	Total     decimal.Decimal
	Average   decimal.Decimal
	Children  []*ReportGroup
	Movements []Expense
}

// GroupedReport is the aggregated result plus its grand totals. Groups appear
// in first-appearance order of the input, which is what the export formatters
// render.
type GroupedReport struct {
	GroupBy GroupBy
	Groups  []*ReportGroup
	Count   int
	Total   decimal.Decimal
}

// Aggregate reduces a flat list of expense rows into a grouped report.
//
// The input is expected to be pre-filtered to live expenses within a resolved
// date range; the aggregator itself applies no filters. It is a pure single
// pass: grouping never reorders rows, subtotals always add up to the grand
// total, and the grand total equals the sum of all input amounts.
func Aggregate(expenses []Expense, groupBy GroupBy) (GroupedReport, error) {
	switch groupBy {
	case GroupByCategory, GroupByPersonCategory, GroupByPersonCategoryMovement:
	default:
		return GroupedReport{}, fmt.Errorf("unknown grouping %q", groupBy)
	}

	rep := GroupedReport{GroupBy: groupBy, Total: decimal.Zero}
	outer := newGroupIndex()

	for _, e := range expenses {
		rep.Count++
		rep.Total = rep.Total.Add(e.Amount)

		if groupBy == GroupByCategory {
			g := outer.get(&rep.Groups, categoryKey(e))
			g.Icon, g.Color = categoryLook(e)
			g.add(e.Amount)
			continue
		}

		person := outer.get(&rep.Groups, personKey(e))
		person.add(e.Amount)
		cat := person.child(categoryKey(e))
		cat.Icon, cat.Color = categoryLook(e)
		cat.add(e.Amount)
		if groupBy == GroupByPersonCategoryMovement {
			cat.Movements = append(cat.Movements, e)
		}
	}

	finalizeAverages(rep.Groups)
	return rep, nil
}

func categoryKey(e Expense) string {
	if e.CategoryName == "" {
		return NoCategoryLabel
	}
	return e.CategoryName
}

func categoryLook(e Expense) (icon, color string) {
	return e.CategoryIcon, e.CategoryColor
}

func personKey(e Expense) string {
	if e.CorrespondentTo == "" {
		return NoPersonLabel
	}
	return e.CorrespondentTo
}

// groupIndex keeps insertion-order group slices addressable by key without
// string-concatenation composite keys.
type groupIndex struct {
	byKey map[string]*ReportGroup
}

func newGroupIndex() *groupIndex {
	return &groupIndex{byKey: make(map[string]*ReportGroup)}
}

func (ix *groupIndex) get(ordered *[]*ReportGroup, key string) *ReportGroup {
	if g, ok := ix.byKey[key]; ok {
		return g
	}
	g := &ReportGroup{Key: key, Total: decimal.Zero}
	ix.byKey[key] = g
	*ordered = append(*ordered, g)
	return g
}

// child finds or appends a nested group, preserving first-appearance order
// within the parent.
func (g *ReportGroup) child(key string) *ReportGroup {
	for _, c := range g.Children {
		if c.Key == key {
			return c
		}
	}
	c := &ReportGroup{Key: key, Total: decimal.Zero}
	g.Children = append(g.Children, c)
	return c
}

func (g *ReportGroup) add(amount decimal.Decimal) {
	g.Count++
	g.Total = g.Total.Add(amount)
}

// finalizeAverages fills Average = Total/Count for every node. A zero count
// yields a zero average, never a division error.
func finalizeAverages(groups []*ReportGroup) {
	for _, g := range groups {
		if g.Count > 0 {
			g.Average = g.Total.Div(decimal.NewFromInt(int64(g.Count))).Round(2)
		} else {
			g.Average = decimal.Zero
		}
		finalizeAverages(g.Children)
	}
}
