package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umanari145/blog-backend/internal/models"
	"github.com/umanari145/blog-backend/internal/query"
	"github.com/umanari145/blog-backend/internal/repositories"
	"github.com/umanari145/blog-backend/internal/repositories/memory"
)

func newTestServices(t *testing.T) *ServiceContainer {
	t.Helper()
	container, err := NewServiceContainer(memory.NewSampleStore())
	require.NoError(t, err)
	return container
}

func TestListPostsScenarios(t *testing.T) {
	svc := newTestServices(t).BlogService
	ctx := context.Background()

	tests := []struct {
		name       string
		params     query.Params
		wantTotal  int64
		wantPages  int64
		wantItems  int
		wantPageNo int
	}{
		{"category perl", query.Params{Category: "perl"}, 17, 2, 10, 1},
		{"tag npm", query.Params{Tag: "npm"}, 22, 3, 10, 1},
		{"tag npm page 3", query.Params{Tag: "npm", PageNo: "3"}, 22, 3, 2, 3},
		{"march 2022", query.Params{Year: "2022", Month: "03"}, 24, 3, 10, 1},
		{"search prefix", query.Params{SearchWord: "-contents-00"}, 10, 1, 10, 1},
		{"search all", query.Params{SearchWord: "-contents-"}, 25, 3, 10, 1},
		{"negative page clamps", query.Params{PageNo: "-1"}, 25, 3, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.ListPosts(ctx, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, page.TotalItemsCount)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.Len(t, page.Items, tt.wantItems)
			assert.Equal(t, tt.wantPageNo, page.CurrentPage)
			assert.Equal(t, query.PageSize, page.PerOnePage)
		})
	}
}

func TestListPostsNotFound(t *testing.T) {
	svc := newTestServices(t).BlogService
	ctx := context.Background()

	_, err := svc.ListPosts(ctx, query.Params{Category: "hogehoge"})
	assert.True(t, repositories.IsNotFound(err))

	_, err = svc.ListPosts(ctx, query.Params{Category: "perl", PageNo: "3"})
	assert.True(t, repositories.IsNotFound(err))
}

func TestGetPost(t *testing.T) {
	svc := newTestServices(t).BlogService
	ctx := context.Background()

	post, err := svc.GetPost(ctx, "post-003")
	require.NoError(t, err)
	assert.Equal(t, "2022-03-04", post.PostDate)

	_, err = svc.GetPost(ctx, "hogehoge")
	assert.True(t, repositories.IsNotFound(err))

	_, err = svc.GetPost(ctx, " ")
	assert.True(t, repositories.IsValidation(err))
}

func TestCreatePost(t *testing.T) {
	svc := newTestServices(t).BlogService
	ctx := context.Background()

	id, err := svc.CreatePost(ctx, &models.Post{PostNo: "post-900", Title: "hello", PostDate: "2023-01-02"})
	require.NoError(t, err)
	assert.Len(t, id, 24)

	created, err := svc.GetPost(ctx, "post-900")
	require.NoError(t, err)
	assert.Equal(t, id, created.ID.Hex())
	assert.NotNil(t, created.Tags)

	tests := []struct {
		name string
		post *models.Post
	}{
		{"nil", nil},
		{"missing title", &models.Post{PostNo: "post-901"}},
		{"missing post_no", &models.Post{Title: "x"}},
		{"bad date", &models.Post{PostNo: "post-902", Title: "x", PostDate: "02/01/2023"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(ctx, tt.post)
			assert.True(t, repositories.IsValidation(err), "got %v", err)
		})
	}
}

func TestUpdateThenRead(t *testing.T) {
	svc := newTestServices(t).BlogService
	ctx := context.Background()

	title := "renamed"
	tags := []int{}
	require.NoError(t, svc.UpdatePost(ctx, "post-005", &models.PostUpdate{Title: &title, Tags: &tags}))

	post, err := svc.GetPost(ctx, "post-005")
	require.NoError(t, err)
	assert.Equal(t, "renamed", post.Title)
	assert.Equal(t, "post-contents-005", post.Contents)
	assert.Empty(t, post.Tags)

	page, err := svc.ListPosts(ctx, query.Params{Tag: "npm"})
	require.NoError(t, err)
	assert.Equal(t, int64(21), page.TotalItemsCount)

	err = svc.UpdatePost(ctx, "hogehoge", &models.PostUpdate{Title: &title})
	assert.True(t, repositories.IsNotFound(err))

	bad := "yesterday"
	err = svc.UpdatePost(ctx, "post-005", &models.PostUpdate{PostDate: &bad})
	assert.True(t, repositories.IsValidation(err))
}

func TestGetMenus(t *testing.T) {
	svc := newTestServices(t).MenuService

	menus, err := svc.GetMenus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.MenuItem{{Name: "perl", Count: 17}}, menus.Categories)
	assert.Equal(t, []models.MenuItem{{Name: "npm", Count: 22}}, menus.Tags)
	assert.Equal(t, []models.MenuItem{{Name: "2022-03", Count: 24}, {Name: "2022-04", Count: 1}}, menus.Dates)

	empty, err := NewServiceContainer(memory.NewStore())
	require.NoError(t, err)
	_, err = empty.MenuService.GetMenus(context.Background())
	assert.True(t, repositories.IsNotFound(err))
}

func TestLogin(t *testing.T) {
	svc := newTestServices(t).AuthService
	ctx := context.Background()

	user, err := svc.Login(ctx, memory.SampleEmail, memory.SamplePassword)
	require.NoError(t, err)
	assert.Equal(t, memory.SampleEmail, user.Email)

	user, err = svc.Login(ctx, memory.SampleLegacyEmail, memory.SampleLegacyPassword)
	require.NoError(t, err)
	assert.Equal(t, memory.SampleLegacyEmail, user.Email)

	_, err = svc.Login(ctx, memory.SampleEmail, "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, "nobody@example.com", "password")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, "", "")
	assert.True(t, repositories.IsValidation(err))
}

type failingUsers struct{}

func (failingUsers) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, repositories.ConnectionError(errors.New("no reachable servers"))
}

func TestLoginStoreFailureIsNotUnauthorized(t *testing.T) {
	_, err := NewAuthService(failingUsers{}).Login(context.Background(), "a@example.com", "x")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.True(t, repositories.IsConnection(err))
}

func TestPasswordMatches(t *testing.T) {
	assert.True(t, PasswordMatches("plain", "plain"))
	assert.False(t, PasswordMatches("plain", "Plain"))
	assert.False(t, PasswordMatches("$2a$04$invalidhashvalue", "anything"))
}
