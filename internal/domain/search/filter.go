package search

const (
	DefaultPageSize = 10

	SortByDefault = "default"
	SortByScore   = "score"
	SortByPrice   = "price"
)

// Filter carries the user-facing search filters. An empty string or a nil
// bound means the field is not filtered on.
type Filter struct {
	Key      string `json:"key,omitempty"`
	City     string `json:"city,omitempty"`
	StarName string `json:"starName,omitempty"`
	Brand    string `json:"brand,omitempty"`
	MinPrice *int   `json:"minPrice,omitempty"`
	MaxPrice *int   `json:"maxPrice,omitempty"`
	Location string `json:"location,omitempty"`
	SortBy   string `json:"sortBy,omitempty"`
	Page     int    `json:"page,omitempty"`
	Size     int    `json:"size,omitempty"`
}

func (f *Filter) HasKeyword() bool {
	return f.Key != ""
}

// HasPriceRange reports whether both bounds are set. A single bound is ignored.
func (f *Filter) HasPriceRange() bool {
	return f.MinPrice != nil && f.MaxPrice != nil
}

func (f *Filter) HasLocation() bool {
	return f.Location != ""
}

// Window returns the clamped page, size and the resulting offset.
func (f *Filter) Window() (page, size, offset int) {
	page = f.Page
	if page < 1 {
		page = 1
	}
	size = f.Size
	if size < 1 {
		size = DefaultPageSize
	}
	return page, size, (page - 1) * size
}

// FieldSort maps SortBy to a field sort, if any.
func (f *Filter) FieldSort() (FieldSort, bool) {
	switch f.SortBy {
	case SortByScore:
		return FieldSort{Field: FieldScore, Ascending: false}, true
	case SortByPrice:
		return FieldSort{Field: FieldPrice, Ascending: true}, true
	default:
		return FieldSort{}, false
	}
}
