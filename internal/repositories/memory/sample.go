package memory

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/umanari145/blog-backend/internal/models"
)

// Sample account credentials loaded by SampleData.
const (
	SampleEmail          = "admin@example.com"
	SamplePassword       = "password"
	SampleLegacyEmail    = "legacy@example.com"
	SampleLegacyPassword = "legacy-password"
)

// SampleData returns a small blog: 25 posts in March and April 2022, a "perl"
// category on the first 17 and an "npm" tag on the first 22.
func SampleData() ([]models.Post, []models.Label, []models.User) {
	posts := make([]models.Post, 0, 25)
	for i := 0; i < 25; i++ {
		p := models.Post{
			PostNo:     fmt.Sprintf("post-%03d", i),
			Title:      fmt.Sprintf("post-title-%03d", i),
			Contents:   fmt.Sprintf("post-contents-%03d", i),
			PostDate:   fmt.Sprintf("2022-03-%02d", i+1),
			Categories: []int{},
			Tags:       []int{},
		}
		if i == 24 {
			p.PostDate = "2022-04-01"
		}
		if i < 17 {
			p.Categories = []int{2}
		}
		if i < 22 {
			p.Tags = []int{3}
		}
		posts = append(posts, p)
	}

	labels := []models.Label{
		{No: 1, Name: "未分類", Type: models.LabelTypeCategory},
		{No: 2, Name: "perl", Type: models.LabelTypeCategory},
		{No: 3, Name: "npm", Type: models.LabelTypeTag},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SamplePassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	users := []models.User{
		{Email: SampleEmail, Password: string(hash), Name: "admin"},
		{Email: SampleLegacyEmail, Password: SampleLegacyPassword},
	}
	return posts, labels, users
}

// NewSampleStore returns a store loaded with SampleData
func NewSampleStore() *Store {
	s := NewStore()
	s.Seed(SampleData())
	return s
}
