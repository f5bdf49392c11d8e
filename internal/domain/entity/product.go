package entity

// Product is the catalog document served by the product service.
type Product struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Slug         string              `json:"slug"`
	Description  string              `json:"description"`
	Price        float64             `json:"price"`
	ImageURL     string              `json:"imageUrl"`
	CategorySlug string              `json:"categorySlug"`
	Sizes        []string            `json:"sizes"`
	Colors       []string            `json:"colors"`
	Fit          string              `json:"fit,omitempty"`
	Material     string              `json:"material,omitempty"`
	Filters      map[string][]string `json:"filters,omitempty"`
}

// CategoryFilter is one declarative filter field of a category: a renderer
// iterates these instead of special-casing each filter by name.
type CategoryFilter struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Category is the category document, including the filter schema used to
// build browse/filter forms.
type Category struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	ParentSlug    string           `json:"parentSlug,omitempty"`
	Filters       []CategoryFilter `json:"filters"`
	Subcategories []Category       `json:"subcategories,omitempty"`
}
