package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAggregateByCategory(t *testing.T) {
	rows := []Expense{
		{CategoryName: "Transporte", Amount: dec("50"), Status: StatusActive},
		{CategoryName: "Transporte", Amount: dec("30"), Status: StatusActive},
		{Amount: dec("20"), Status: StatusActive}, // no category
	}

	rep, err := Aggregate(rows, GroupByCategory)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(rep.Groups))
	}

	transporte := rep.Groups[0]
	if transporte.Key != "Transporte" || transporte.Count != 2 ||
		!transporte.Total.Equal(dec("80")) || !transporte.Average.Equal(dec("40")) {
		t.Fatalf("transporte group: %+v", transporte)
	}

	other := rep.Groups[1]
	if other.Key != NoCategoryLabel || other.Count != 1 ||
		!other.Total.Equal(dec("20")) || !other.Average.Equal(dec("20")) {
		t.Fatalf("fallback group: %+v", other)
	}

	if !rep.Total.Equal(dec("100")) || rep.Count != 3 {
		t.Fatalf("grand total %s count %d", rep.Total, rep.Count)
	}
}

func TestAggregateGrandTotalRoundTrip(t *testing.T) {
	rows := []Expense{
		{CorrespondentTo: "Ana", CategoryName: "Papelería", Amount: dec("12.35")},
		{CorrespondentTo: "Ana", CategoryName: "Transporte", Amount: dec("7.65")},
		{CorrespondentTo: "Luis", CategoryName: "Papelería", Amount: dec("100.10")},
		{CorrespondentTo: "", CategoryName: "", Amount: dec("0.90")},
	}
	want := decimal.Zero
	for _, r := range rows {
		want = want.Add(r.Amount)
	}

	for _, groupBy := range []GroupBy{GroupByCategory, GroupByPersonCategory, GroupByPersonCategoryMovement} {
		rep, err := Aggregate(rows, groupBy)
		if err != nil {
			t.Fatalf("%s: %v", groupBy, err)
		}
		if !rep.Total.Equal(want) {
			t.Fatalf("%s: grand total %s, want %s", groupBy, rep.Total, want)
		}
		sum := decimal.Zero
		for _, g := range rep.Groups {
			sum = sum.Add(g.Total)
		}
		if !sum.Equal(want) {
			t.Fatalf("%s: group totals sum %s, want %s", groupBy, sum, want)
		}
	}
}

func TestAggregatePersonCategorySubtotals(t *testing.T) {
	rows := []Expense{
		{CorrespondentTo: "Ana", CategoryName: "Papelería", Amount: dec("10")},
		{CorrespondentTo: "Luis", CategoryName: "Transporte", Amount: dec("20")},
		{CorrespondentTo: "Ana", CategoryName: "Transporte", Amount: dec("5")},
		{CorrespondentTo: "Ana", CategoryName: "Papelería", Amount: dec("15")},
	}

	rep, err := Aggregate(rows, GroupByPersonCategory)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// First-appearance order: Ana, Luis.
	if rep.Groups[0].Key != "Ana" || rep.Groups[1].Key != "Luis" {
		t.Fatalf("order: %q, %q", rep.Groups[0].Key, rep.Groups[1].Key)
	}

	ana := rep.Groups[0]
	if !ana.Total.Equal(dec("30")) || ana.Count != 3 {
		t.Fatalf("ana: %+v", ana)
	}
	// Category order within Ana: Papelería first.
	if ana.Children[0].Key != "Papelería" || ana.Children[1].Key != "Transporte" {
		t.Fatalf("ana children: %q, %q", ana.Children[0].Key, ana.Children[1].Key)
	}

	// Person total equals the sum of its category subtotals.
	for _, p := range rep.Groups {
		sum := decimal.Zero
		for _, c := range p.Children {
			sum = sum.Add(c.Total)
		}
		if !sum.Equal(p.Total) {
			t.Fatalf("%s: children sum %s != person total %s", p.Key, sum, p.Total)
		}
	}
}

func TestAggregateMovementsPreserveRows(t *testing.T) {
	rows := []Expense{
		{ID: 1, CorrespondentTo: "Ana", CategoryName: "Papelería", Amount: dec("10")},
		{ID: 2, CorrespondentTo: "Ana", CategoryName: "Papelería", Amount: dec("2.50")},
		{ID: 3, CorrespondentTo: "", CategoryName: "", Amount: dec("4")},
	}

	rep, err := Aggregate(rows, GroupByPersonCategoryMovement)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := map[int64]int{}
	for _, p := range rep.Groups {
		for _, c := range p.Children {
			sum := decimal.Zero
			for _, m := range c.Movements {
				seen[m.ID]++
				sum = sum.Add(m.Amount)
			}
			if !sum.Equal(c.Total) {
				t.Fatalf("%s/%s: movement sum %s != subtotal %s", p.Key, c.Key, sum, c.Total)
			}
		}
	}
	for _, r := range rows {
		if seen[r.ID] != 1 {
			t.Fatalf("row %d appears %d times, want exactly 1", r.ID, seen[r.ID])
		}
	}

	// Missing fields land in the documented fallback buckets.
	last := rep.Groups[len(rep.Groups)-1]
	if last.Key != NoPersonLabel || last.Children[0].Key != NoCategoryLabel {
		t.Fatalf("fallback bucket: %q/%q", last.Key, last.Children[0].Key)
	}
}

func TestAggregateCarriesCategoryLook(t *testing.T) {
	rows := []Expense{
		{CategoryName: "Comida", CategoryIcon: "🍽️", CategoryColor: "#ff8800", Amount: dec("9")},
	}
	rep, err := Aggregate(rows, GroupByCategory)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g := rep.Groups[0]
	if g.Icon != "🍽️" || g.Color != "#ff8800" {
		t.Fatalf("look not carried: %+v", g)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	rep, err := Aggregate(nil, GroupByCategory)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Groups) != 0 || rep.Count != 0 || !rep.Total.IsZero() {
		t.Fatalf("got %+v", rep)
	}
}

func TestAggregateUnknownGrouping(t *testing.T) {
	if _, err := Aggregate(nil, GroupBy("by-moon-phase")); err == nil {
		t.Fatal("expected error")
	}
}

func TestAverageZeroCountIsZero(t *testing.T) {
	groups := []*ReportGroup{{Key: "empty", Total: decimal.Zero}}
	finalizeAverages(groups)
	if !groups[0].Average.IsZero() {
		t.Fatalf("average = %s", groups[0].Average)
	}
}

func TestAverageRounding(t *testing.T) {
	rows := []Expense{
		{CategoryName: "Varios", Amount: dec("10")},
		{CategoryName: "Varios", Amount: dec("10")},
		{CategoryName: "Varios", Amount: dec("10.01")},
	}
	rep, err := Aggregate(rows, GroupByCategory)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rep.Groups[0].Average.Equal(dec("10.00")) {
		t.Fatalf("average = %s", rep.Groups[0].Average)
	}
}
