package models

// LabelType distinguishes categories from tags in the labels collection.
type LabelType string

const (
	LabelTypeCategory LabelType = "category"
	LabelTypeTag      LabelType = "post_tag"
)

// Label names a category or tag number referenced from Post.Categories / Post.Tags.
type Label struct {
	No   int       `json:"no" bson:"no"`
	Name string    `json:"name" bson:"name"`
	Type LabelType `json:"type" bson:"type"`
}

// IsValid reports whether the label type is one the API understands.
func (t LabelType) IsValid() bool {
	return t == LabelTypeCategory || t == LabelTypeTag
}
