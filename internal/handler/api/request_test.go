//go:build unit

package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DanSBol/shareit/internal/domain/request"
	"github.com/DanSBol/shareit/internal/handler/api"
	"github.com/DanSBol/shareit/internal/handler/middleware"
	"github.com/DanSBol/shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type stubRequestCommands struct {
	view *queries.RequestView
	err  error
}

func (s *stubRequestCommands) Create(context.Context, int64, string) (*queries.RequestView, error) {
	return s.view, s.err
}

type stubRequestQueries struct {
	view  *queries.RequestView
	views []queries.RequestView
	err   error
}

func (s *stubRequestQueries) GetByID(context.Context, int64, int64) (*queries.RequestView, error) {
	return s.view, s.err
}

func (s *stubRequestQueries) ListOwn(context.Context, int64) ([]queries.RequestView, error) {
	return s.views, s.err
}

func (s *stubRequestQueries) ListOthers(context.Context, int64, int, int) ([]queries.RequestView, error) {
	return s.views, s.err
}

type RequestHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubRequestCommands
	queries  *stubRequestQueries
}

func (s *RequestHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.commands = &stubRequestCommands{}
	s.queries = &stubRequestQueries{}

	handler := api.NewRequestHandler(s.commands, s.queries)

	group := s.router.Group("/requests")
	group.Use(middleware.RequireSharer())
	group.POST("", handler.Create)
}

func TestRequestHandlerSuite(t *testing.T) {
	suite.Run(t, new(RequestHandlerTestSuite))
}

func (s *RequestHandlerTestSuite) perform(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SharerHeader, "1")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RequestHandlerTestSuite) TestCreate_EmptyDescriptionRejected() {
	s.commands.err = request.ErrEmptyDescription

	rec := s.perform(http.MethodPost, "/requests", `{"description":"   "}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), request.ErrEmptyDescription.Error())
}
