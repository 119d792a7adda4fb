package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a single blog article stored in the posts collection.
type Post struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	PostNo     string             `json:"post_no" bson:"post_no" validate:"required"`
	Title      string             `json:"title" bson:"title" validate:"required"`
	Contents   string             `json:"contents" bson:"contents"`
	PostDate   string             `json:"post_date" bson:"post_date" validate:"omitempty,datetime=2006-01-02"`
	Categories []int              `json:"categories" bson:"categories"`
	Tags       []int              `json:"tags" bson:"tags"`
}

// Month returns the YYYY-MM prefix of the post date, or "" when the date is too short.
func (p *Post) Month() string {
	if len(p.PostDate) < 7 {
		return ""
	}
	return p.PostDate[:7]
}

// Validate checks the fields a stored post cannot do without.
func (p *Post) Validate() error {
	if strings.TrimSpace(p.PostNo) == "" {
		return fmt.Errorf("post_no is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if p.PostDate != "" && !IsValidPostDate(p.PostDate) {
		return fmt.Errorf("invalid post_date: %s", p.PostDate)
	}
	return nil
}

// PostUpdate carries a partial post. Nil fields are left untouched.
type PostUpdate struct {
	Title      *string `json:"title,omitempty" bson:"title,omitempty"`
	Contents   *string `json:"contents,omitempty" bson:"contents,omitempty"`
	PostDate   *string `json:"post_date,omitempty" bson:"post_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Categories *[]int  `json:"categories,omitempty" bson:"categories,omitempty"`
	Tags       *[]int  `json:"tags,omitempty" bson:"tags,omitempty"`
}

// IsEmpty reports whether the update supplies no fields at all.
func (u *PostUpdate) IsEmpty() bool {
	return u == nil || (u.Title == nil && u.Contents == nil && u.PostDate == nil &&
		u.Categories == nil && u.Tags == nil)
}

// Apply copies the supplied fields onto p.
func (u *PostUpdate) Apply(p *Post) {
	if u == nil {
		return
	}
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Contents != nil {
		p.Contents = *u.Contents
	}
	if u.PostDate != nil {
		p.PostDate = *u.PostDate
	}
	if u.Categories != nil {
		p.Categories = append([]int{}, (*u.Categories)...)
	}
	if u.Tags != nil {
		p.Tags = append([]int{}, (*u.Tags)...)
	}
}
