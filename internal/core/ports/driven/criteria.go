package driven

// Criteria is the admin API's search payload. It serialises straight to the
// JSON body of search/list requests; services construct it, adapters send it.
type Criteria struct {
	Page  int    `json:"page,omitempty"`
	Limit int    `json:"limit,omitempty"`
	Term  string `json:"term,omitempty"`

	Filter []Filter `json:"filter,omitempty"`
	Sort   []Sort   `json:"sort,omitempty"`

	// Includes trims the response to the listed fields per entity,
	// e.g. {"media_folder": ["id"]}.
	Includes map[string][]string `json:"includes,omitempty"`
}

// Filter is one search filter clause.
type Filter struct {
	Type  string `json:"type"`
	Field string `json:"field"`
	// Value deliberately has no omitempty: filtering on null is meaningful
	// (a media folder's parentId is null at the root level).
	Value any `json:"value"`
}

// Sort is one sort clause.
type Sort struct {
	Field string `json:"field"`
	Order string `json:"order,omitempty"`
}

// Equals builds an exact-match filter clause.
func Equals(field string, value any) Filter {
	return Filter{Type: "equals", Field: field, Value: value}
}

// Contains builds a substring-match filter clause.
func Contains(field string, value any) Filter {
	return Filter{Type: "contains", Field: field, Value: value}
}

// One is a criteria preset for bounded existence probes: a single-record
// page, never a full listing.
func One(filters ...Filter) *Criteria {
	return &Criteria{Page: 1, Limit: 1, Filter: filters}
}
