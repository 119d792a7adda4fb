package models

// MenuItem is one facet bucket: a label name or a YYYY-MM month with its post count.
type MenuItem struct {
	Name  string `json:"name" bson:"name"`
	Count int64  `json:"count" bson:"count"`
}

// Menus groups the three navigation facets.
type Menus struct {
	Categories []MenuItem `json:"categories"`
	Tags       []MenuItem `json:"tags"`
	Dates      []MenuItem `json:"dates"`
}

// IsEmpty reports whether every facet is empty.
func (m *Menus) IsEmpty() bool {
	return len(m.Categories) == 0 && len(m.Tags) == 0 && len(m.Dates) == 0
}
