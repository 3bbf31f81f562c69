package models

// Category groups posts. Slug is unique and is the key posts reference.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryPatch carries a partial category update; nil fields keep the
// stored value.
type CategoryPatch struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

// IsEmpty reports whether no field is set.
func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Slug == nil
}
