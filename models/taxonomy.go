package models

// Category is a top-level policy category such as "A".
type Category struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Short string `yaml:"short,omitempty"` // used in chart legends and reports
}

// Tag maps a policy tag code to its category.
type Tag struct {
	Code     string `yaml:"code"`
	Category string `yaml:"category"`
}

// Taxonomy is the ordered set of categories and tags a run aggregates over.
type Taxonomy struct {
	Categories []Category `yaml:"categories"`
	Tags       []Tag      `yaml:"tags"`
}

// CategoryByID returns the category with the given ID.
func (t Taxonomy) CategoryByID(id string) (Category, bool) {
	for _, c := range t.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// TagsIn returns the tags belonging to a category, in taxonomy order.
func (t Taxonomy) TagsIn(categoryID string) []Tag {
	var tags []Tag
	for _, tag := range t.Tags {
		if tag.Category == categoryID {
			tags = append(tags, tag)
		}
	}
	return tags
}
