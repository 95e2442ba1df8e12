//go:build unit

package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DanSBol/shareit/internal/domain/item"
	"github.com/DanSBol/shareit/internal/handler/api"
	"github.com/DanSBol/shareit/internal/handler/middleware"
	"github.com/DanSBol/shareit/internal/usecase/commands"
	"github.com/DanSBol/shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type stubItemCommands struct {
	view    *queries.ItemView
	comment *queries.CommentView
	err     error
}

func (s *stubItemCommands) Create(context.Context, int64, commands.CreateItemParams) (*queries.ItemView, error) {
	return s.view, s.err
}

func (s *stubItemCommands) Update(context.Context, int64, int64, commands.ItemPatch) (*queries.ItemView, error) {
	return s.view, s.err
}

func (s *stubItemCommands) Delete(context.Context, int64, int64) error {
	return s.err
}

func (s *stubItemCommands) AddComment(context.Context, int64, int64, string) (*queries.CommentView, error) {
	return s.comment, s.err
}

type stubItemQueries struct {
	view  *queries.ItemView
	views []queries.ItemView
	err   error
}

func (s *stubItemQueries) GetByID(context.Context, int64, int64) (*queries.ItemView, error) {
	return s.view, s.err
}

func (s *stubItemQueries) ListByOwner(context.Context, int64, int, int) ([]queries.ItemView, error) {
	return s.views, s.err
}

func (s *stubItemQueries) Search(context.Context, string, int, int) ([]queries.ItemView, error) {
	return s.views, s.err
}

type ItemHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubItemCommands
	queries  *stubItemQueries
}

func (s *ItemHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.commands = &stubItemCommands{}
	s.queries = &stubItemQueries{}

	handler := api.NewItemHandler(s.commands, s.queries)

	group := s.router.Group("/items")
	group.Use(middleware.RequireSharer())
	group.POST("", handler.Create)
	group.PATCH("/:id", handler.Update)
	group.POST("/:id/comment", handler.AddComment)
}

func TestItemHandlerSuite(t *testing.T) {
	suite.Run(t, new(ItemHandlerTestSuite))
}

func (s *ItemHandlerTestSuite) perform(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SharerHeader, "1")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// Whitespace-only fields pass the required binding but fail entity
// validation; both sentinels must map to 400.
func (s *ItemHandlerTestSuite) TestCreate_SemanticValidationErrors() {
	testCases := []struct {
		name string
		body string
		err  error
	}{
		{
			name: "whitespace-only name",
			body: `{"name":"  ","description":"a drill","available":true}`,
			err:  item.ErrEmptyName,
		},
		{
			name: "whitespace-only description",
			body: `{"name":"drill","description":"  ","available":true}`,
			err:  item.ErrEmptyDescription,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.commands.err = tc.err

			rec := s.perform(http.MethodPost, "/items", tc.body)

			s.Equal(http.StatusBadRequest, rec.Code)
			s.Contains(rec.Body.String(), tc.err.Error())
		})
	}
}

func (s *ItemHandlerTestSuite) TestUpdate_EmptyNameRejected() {
	s.commands.err = item.ErrEmptyName

	rec := s.perform(http.MethodPatch, "/items/3", `{"name":"   "}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), item.ErrEmptyName.Error())
}

func (s *ItemHandlerTestSuite) TestAddComment_EmptyTextRejected() {
	s.commands.err = commands.ErrEmptyComment

	rec := s.perform(http.MethodPost, "/items/3/comment", `{"text":"   "}`)

	s.Equal(http.StatusBadRequest, rec.Code)
}
