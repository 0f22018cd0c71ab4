package search

// Index field names. They are a fixed contract with the hotel index mapping.
const (
	FieldAll      = "all"
	FieldCity     = "city"
	FieldStarName = "starName"
	FieldBrand    = "brand"
	FieldPrice    = "price"
	FieldScore    = "score"
	FieldIsAD     = "isAD"
	FieldLocation = "location"
)

const (
	PromotedWeight = 100
	BoostMultiply  = "multiply"
)

// Predicate is one node of a query tree. The set of node types is closed.
type Predicate interface {
	predicate()
}

type MatchAll struct{}

// Match is an analyzed full-text match.
type Match struct {
	Field string
	Value string
}

// Term is an exact, unanalyzed match.
type Term struct {
	Field string
	Value any
}

// Range is inclusive on both ends.
type Range struct {
	Field string
	Gte   int
	Lte   int
}

type And struct {
	Must []Predicate
}

// FunctionScore scales the score of documents matching Filter by Weight.
// It never changes which documents match Query.
type FunctionScore struct {
	Query     Predicate
	Filter    Predicate
	Weight    float64
	BoostMode string
}

func (MatchAll) predicate()      {}
func (Match) predicate()         {}
func (Term) predicate()          {}
func (Range) predicate()         {}
func (And) predicate()           {}
func (FunctionScore) predicate() {}

// BuildQuery turns a filter into the boosted conjunctive query shared by the
// paginated and facet calls.
func BuildQuery(f Filter) Predicate {
	must := make([]Predicate, 0, 5)

	if f.HasKeyword() {
		must = append(must, Match{Field: FieldAll, Value: f.Key})
	} else {
		must = append(must, MatchAll{})
	}

	if f.City != "" {
		must = append(must, Match{Field: FieldCity, Value: f.City})
	}

	if f.StarName != "" {
		must = append(must, Term{Field: FieldStarName, Value: f.StarName})
	}

	if f.Brand != "" {
		must = append(must, Term{Field: FieldBrand, Value: f.Brand})
	}

	if f.HasPriceRange() {
		must = append(must, Range{Field: FieldPrice, Gte: *f.MinPrice, Lte: *f.MaxPrice})
	}

	return FunctionScore{
		Query:     And{Must: must},
		Filter:    Term{Field: FieldIsAD, Value: true},
		Weight:    PromotedWeight,
		BoostMode: BoostMultiply,
	}
}

// Intent lists which optional predicates a query tree carries.
type Intent struct {
	Keyword  bool
	City     bool
	StarName bool
	Brand    bool
	Price    bool
	Promoted bool
}

// DescribeQuery walks a tree produced by BuildQuery and reports its intent.
func DescribeQuery(p Predicate) Intent {
	var in Intent
	describe(p, &in)
	return in
}

func describe(p Predicate, in *Intent) {
	switch q := p.(type) {
	case FunctionScore:
		describe(q.Query, in)
		if t, ok := q.Filter.(Term); ok && t.Field == FieldIsAD {
			in.Promoted = true
		}
	case And:
		for _, m := range q.Must {
			describe(m, in)
		}
	case Match:
		switch q.Field {
		case FieldAll:
			in.Keyword = true
		case FieldCity:
			in.City = true
		}
	case Term:
		switch q.Field {
		case FieldStarName:
			in.StarName = true
		case FieldBrand:
			in.Brand = true
		}
	case Range:
		if q.Field == FieldPrice {
			in.Price = true
		}
	}
}
