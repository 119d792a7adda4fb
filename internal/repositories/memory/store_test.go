package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umanari145/blog-backend/internal/models"
	"github.com/umanari145/blog-backend/internal/query"
	"github.com/umanari145/blog-backend/internal/repositories"
)

func TestFindAndCount(t *testing.T) {
	store := NewSampleStore()
	posts := store.Posts()
	ctx := context.Background()

	tests := []struct {
		name      string
		params    query.Params
		wantCount int64
		wantPage  int
		wantFirst string
	}{
		{"category", query.Params{Category: "perl"}, 17, 10, "post-016"},
		{"category page 2", query.Params{Category: "perl", PageNo: "2"}, 17, 7, "post-006"},
		{"tag", query.Params{Tag: "npm"}, 22, 10, "post-021"},
		{"category beats tag", query.Params{Category: "perl", Tag: "npm"}, 17, 10, "post-016"},
		{"year month", query.Params{Year: "2022", Month: "03"}, 24, 10, "post-023"},
		{"year month last page", query.Params{Year: "2022", Month: "03", PageNo: "3"}, 24, 4, "post-003"},
		{"search prefix", query.Params{SearchWord: "-contents-00"}, 10, 10, "post-009"},
		{"search all", query.Params{SearchWord: "-contents-"}, 25, 10, "post-024"},
		{"everything", query.Params{}, 25, 10, "post-024"},
		{"unknown category", query.Params{Category: "hogehoge"}, 0, 0, ""},
		{"regex metacharacters are literal", query.Params{SearchWord: ".*"}, 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := query.Plan(tt.params)

			count, err := posts.Count(ctx, d)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)

			page, err := posts.Find(ctx, d)
			require.NoError(t, err)
			assert.Len(t, page, tt.wantPage)
			if tt.wantFirst != "" {
				assert.Equal(t, tt.wantFirst, page[0].PostNo)
			}
		})
	}
}

func TestEmptyLabelListsSurviveCopies(t *testing.T) {
	store := NewSampleStore()
	ctx := context.Background()

	post, err := store.Posts().GetByPostNo(ctx, "post-024")
	require.NoError(t, err)
	assert.NotNil(t, post.Categories)
	assert.Empty(t, post.Categories)
	assert.NotNil(t, post.Tags)
	assert.Empty(t, post.Tags)

	page, err := store.Posts().Find(ctx, query.Plan(query.Params{}))
	require.NoError(t, err)
	require.NotEmpty(t, page)
	assert.Equal(t, "post-024", page[0].PostNo)
	assert.NotNil(t, page[0].Categories)
	assert.NotNil(t, page[0].Tags)
}

func TestCountMatchesUnpaginatedLength(t *testing.T) {
	store := NewSampleStore()
	ctx := context.Background()

	for _, params := range []query.Params{{Category: "perl"}, {Tag: "npm"}, {Year: "2022", Month: "04"}} {
		total := 0
		for page := 1; ; page++ {
			params.PageNo = string(rune('0' + page))
			items, err := store.Posts().Find(ctx, query.Plan(params))
			require.NoError(t, err)
			if len(items) == 0 {
				break
			}
			total += len(items)
		}
		count, err := store.Posts().Count(ctx, query.Plan(params))
		require.NoError(t, err)
		assert.Equal(t, int64(total), count)
	}
}

func TestMenus(t *testing.T) {
	store := NewSampleStore()
	ctx := context.Background()

	categories, err := store.Menus().CountByTaxonomy(ctx, query.CategoryTaxonomy)
	require.NoError(t, err)
	assert.Equal(t, []models.MenuItem{{Name: "perl", Count: 17}}, categories)

	tags, err := store.Menus().CountByTaxonomy(ctx, query.TagTaxonomy)
	require.NoError(t, err)
	assert.Equal(t, []models.MenuItem{{Name: "npm", Count: 22}}, tags)

	dates, err := store.Menus().CountByMonth(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.MenuItem{{Name: "2022-03", Count: 24}, {Name: "2022-04", Count: 1}}, dates)
}

func TestCreateAndUpdate(t *testing.T) {
	store := NewSampleStore()
	posts := store.Posts()
	ctx := context.Background()

	id, err := posts.Create(ctx, &models.Post{PostNo: "post-100", Title: "new"})
	require.NoError(t, err)
	assert.Len(t, id, 24)

	_, err = posts.Create(ctx, &models.Post{PostNo: "post-100", Title: "again"})
	assert.True(t, repositories.IsDuplicate(err))

	post, err := posts.GetByPostNo(ctx, "post-100")
	require.NoError(t, err)

	title := "changed"
	require.NoError(t, posts.UpdateFields(ctx, post.ID, &models.PostUpdate{Title: &title}))

	post, err = posts.GetByPostNo(ctx, "post-100")
	require.NoError(t, err)
	assert.Equal(t, "changed", post.Title)

	_, err = posts.GetByPostNo(ctx, "hogehoge")
	assert.True(t, repositories.IsNotFound(err))
}

func TestReturnedPostsAreCopies(t *testing.T) {
	store := NewSampleStore()
	ctx := context.Background()

	post, err := store.Posts().GetByPostNo(ctx, "post-000")
	require.NoError(t, err)
	post.Categories[0] = 99

	again, err := store.Posts().GetByPostNo(ctx, "post-000")
	require.NoError(t, err)
	assert.Equal(t, []int{2}, again.Categories)
}
