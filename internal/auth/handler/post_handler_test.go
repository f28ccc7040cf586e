package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/dto"
	autherror "github.com/AnthoniusHendriyanto/blog-service/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPosts(t *testing.T) {
	ta := newTestApp(t, appOptions{})
	posts := []domain.Post{
		{ID: 1, Name: "first", Text: "one", AuthorID: 1, CreatedAt: fixedNow, UpdatedAt: fixedNow},
		{ID: 2, Name: "second", Text: "two", AuthorID: 2, CreatedAt: fixedNow, UpdatedAt: fixedNow},
	}

	t.Run("default page", func(t *testing.T) {
		ta.posts.EXPECT().List(gomock.Any(), 0, 10).Return(posts, nil)

		resp := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/blogs", nil))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("limit is capped", func(t *testing.T) {
		ta.posts.EXPECT().List(gomock.Any(), 20, 100).Return([]domain.Post{}, nil)

		resp := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/blogs?skip=20&limit=500", nil))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("negative skip", func(t *testing.T) {
		resp := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/blogs?skip=-1", nil))
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "skip", decode(t, resp)["field"])
	})

	t.Run("store failure", func(t *testing.T) {
		ta.posts.EXPECT().List(gomock.Any(), 0, 10).Return(nil, errors.New("db down"))

		resp := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/blogs", nil))
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}

func TestGetPost(t *testing.T) {
	ta := newTestApp(t, appOptions{})

	t.Run("found", func(t *testing.T) {
		ta.posts.EXPECT().GetByID(gomock.Any(), int64(3)).Return(&domain.Post{ID: 3, Name: "title", Text: "body", AuthorID: 1}, nil)

		resp := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/blog/3", nil))
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decode(t, resp)
		assert.Equal(t, "title", body["name"])
		assert.Equal(t, float64(1), body["author_id"])
	})

	t.Run("not found", func(t *testing.T) {
		ta.posts.EXPECT().GetByID(gomock.Any(), int64(4)).Return(nil, nil)

		resp := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/blog/4", nil))
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		for _, id := range []string{"abc", "0", "-2"} {
			resp := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/blog/"+id, nil))
			assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode, id)
		}
	})
}

func TestCreatePost(t *testing.T) {
	ta := newTestApp(t, appOptions{})
	alice := &domain.User{ID: 7, Username: "alice"}

	t.Run("requires a token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/blog/create", jsonBody(t, dto.PostInput{Name: "title", Text: "body"}))
		req.Header.Set("Content-Type", "application/json")

		resp := ta.do(t, req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("author is the current identity", func(t *testing.T) {
		ta.expectToken("good-token", "alice")
		ta.users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(alice, nil)
		ta.posts.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ interface{}, p *domain.Post) error {
			assert.Equal(t, int64(7), p.AuthorID)
			p.ID = 11
			return nil
		})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/blog/create", jsonBody(t, dto.PostInput{Name: "title", Text: "body"}))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer good-token")

		resp := ta.do(t, req)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		body := decode(t, resp)
		assert.Equal(t, float64(11), body["id"])
		assert.Equal(t, float64(7), body["author_id"])
	})

	t.Run("missing name", func(t *testing.T) {
		ta.expectToken("good-token", "alice")
		ta.users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(alice, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/blog/create", jsonBody(t, dto.PostInput{Text: "body"}))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer good-token")

		resp := ta.do(t, req)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "name", decode(t, resp)["field"])
	})
}

func TestUpdatePost(t *testing.T) {
	ta := newTestApp(t, appOptions{})
	alice := &domain.User{ID: 7, Username: "alice"}
	bob := &domain.User{ID: 8, Username: "bob"}

	newRequest := func(t *testing.T, token string) *http.Request {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/blog/update/3", jsonBody(t, dto.PostInput{Name: "new", Text: "changed"}))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		return req
	}

	t.Run("author may update", func(t *testing.T) {
		ta.expectToken("alice-token", "alice")
		ta.users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(alice, nil)
		ta.posts.EXPECT().GetByID(gomock.Any(), int64(3)).Return(&domain.Post{ID: 3, Name: "old", Text: "body", AuthorID: 7}, nil)
		ta.posts.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		resp := ta.do(t, newRequest(t, "alice-token"))
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "new", decode(t, resp)["name"])
	})

	t.Run("someone else is forbidden", func(t *testing.T) {
		ta.expectToken("bob-token", "bob")
		ta.users.EXPECT().GetByUsername(gomock.Any(), "bob").Return(bob, nil)
		ta.posts.EXPECT().GetByID(gomock.Any(), int64(3)).Return(&domain.Post{ID: 3, Name: "old", Text: "body", AuthorID: 7}, nil)

		resp := ta.do(t, newRequest(t, "bob-token"))
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.Equal(t, autherror.ErrForbidden.Error(), decode(t, resp)["error"])
	})

	t.Run("missing post", func(t *testing.T) {
		ta.expectToken("alice-token", "alice")
		ta.users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(alice, nil)
		ta.posts.EXPECT().GetByID(gomock.Any(), int64(3)).Return(nil, nil)

		resp := ta.do(t, newRequest(t, "alice-token"))
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("requires a token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/blog/update/3", jsonBody(t, dto.PostInput{Name: "new", Text: "changed"}))
		req.Header.Set("Content-Type", "application/json")

		resp := ta.do(t, req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
