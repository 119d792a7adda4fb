package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPostValidate(t *testing.T) {
	tests := []struct {
		name    string
		post    Post
		wantErr bool
	}{
		{"valid", Post{PostNo: "post-1", Title: "hello", PostDate: "2022-03-01"}, false},
		{"no date", Post{PostNo: "post-1", Title: "hello"}, false},
		{"missing post_no", Post{Title: "hello"}, true},
		{"missing title", Post{PostNo: "post-1"}, true},
		{"bad date", Post{PostNo: "post-1", Title: "hello", PostDate: "2022-13-01"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostMonth(t *testing.T) {
	p := Post{PostDate: "2022-03-15"}
	assert.Equal(t, "2022-03", p.Month())

	p.PostDate = "2022"
	assert.Equal(t, "", p.Month())
}

func TestPostJSONUsesHexID(t *testing.T) {
	id := primitive.NewObjectID()
	body, err := json.Marshal(Post{ID: id, PostNo: "post-1"})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, id.Hex(), decoded["_id"])
	assert.Equal(t, "post-1", decoded["post_no"])
}

func TestPostUpdateApply(t *testing.T) {
	title := "new title"
	tags := []int{7}
	update := &PostUpdate{Title: &title, Tags: &tags}

	post := Post{PostNo: "post-1", Title: "old", Contents: "body", Tags: []int{1}}
	update.Apply(&post)

	assert.Equal(t, "new title", post.Title)
	assert.Equal(t, "body", post.Contents)
	assert.Equal(t, []int{7}, post.Tags)
	assert.False(t, update.IsEmpty())
	assert.True(t, (&PostUpdate{}).IsEmpty())
}

func TestUserPasswordNotSerialised(t *testing.T) {
	body, err := json.Marshal(User{Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret")
}

func TestMenusIsEmpty(t *testing.T) {
	assert.True(t, (&Menus{}).IsEmpty())
	assert.False(t, (&Menus{Dates: []MenuItem{{Name: "2022-03", Count: 1}}}).IsEmpty())
}

func TestIsValidPostDate(t *testing.T) {
	assert.True(t, IsValidPostDate("2024-02-29"))
	assert.False(t, IsValidPostDate("2023-02-29"))
	assert.False(t, IsValidPostDate("2023/02/01"))
}
