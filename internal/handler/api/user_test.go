//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DanSBol/shareit/internal/domain/user"
	"github.com/DanSBol/shareit/internal/handler/api"
	"github.com/DanSBol/shareit/internal/pkg/errs"
	"github.com/DanSBol/shareit/internal/usecase/commands"
	"github.com/DanSBol/shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type stubUserCommands struct {
	view *queries.UserView
	err  error
}

func (s *stubUserCommands) Create(context.Context, string, string) (*queries.UserView, error) {
	return s.view, s.err
}

func (s *stubUserCommands) Update(context.Context, int64, commands.UserPatch) (*queries.UserView, error) {
	return s.view, s.err
}

func (s *stubUserCommands) Delete(context.Context, int64) error {
	return s.err
}

type stubUserQueries struct {
	view  *queries.UserView
	views []queries.UserView
	err   error
}

func (s *stubUserQueries) GetByID(context.Context, int64) (*queries.UserView, error) {
	return s.view, s.err
}

func (s *stubUserQueries) List(context.Context) ([]queries.UserView, error) {
	return s.views, s.err
}

type UserHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubUserCommands
	queries  *stubUserQueries
}

func (s *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.commands = &stubUserCommands{}
	s.queries = &stubUserQueries{}

	handler := api.NewUserHandler(s.commands, s.queries)

	s.router.POST("/users", handler.Create)
	s.router.PATCH("/users/:id", handler.Update)
	s.router.DELETE("/users/:id", handler.Delete)
	s.router.GET("/users/:id", handler.Get)
	s.router.GET("/users", handler.List)
}

func TestUserHandlerSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}

func (s *UserHandlerTestSuite) perform(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *UserHandlerTestSuite) TestCreate_Success() {
	s.commands.view = &queries.UserView{ID: 1, Name: "booker", Email: "booker@example.com"}

	rec := s.perform(http.MethodPost, "/users", `{"name":"booker","email":"booker@example.com"}`)

	s.Equal(http.StatusCreated, rec.Code)
	var body map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(float64(1), body["id"])
	s.Equal("booker@example.com", body["email"])
}

// Validation sentinels from the write side must surface as 400, not fall
// through to the 500 branch.
func (s *UserHandlerTestSuite) TestCreate_SemanticValidationErrors() {
	testCases := []struct {
		name string
		body string
		err  error
	}{
		{
			name: "malformed email value",
			body: `{"name":"booker","email":"not-an-email"}`,
			err:  user.ErrInvalidEmail,
		},
		{
			name: "whitespace-only name",
			body: `{"name":"   ","email":"booker@example.com"}`,
			err:  user.ErrEmptyName,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.commands.err = tc.err

			rec := s.perform(http.MethodPost, "/users", tc.body)

			s.Equal(http.StatusBadRequest, rec.Code)
			s.Contains(rec.Body.String(), tc.err.Error())
		})
	}
}

func (s *UserHandlerTestSuite) TestCreate_EmailTakenConflicts() {
	s.commands.err = errs.ErrEmailTaken

	rec := s.perform(http.MethodPost, "/users", `{"name":"booker","email":"taken@example.com"}`)

	s.Equal(http.StatusConflict, rec.Code)
}

func (s *UserHandlerTestSuite) TestUpdate_InvalidEmailRejected() {
	s.commands.err = user.ErrInvalidEmail

	rec := s.perform(http.MethodPatch, "/users/1", `{"email":"still-not-an-email"}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), user.ErrInvalidEmail.Error())
}

func (s *UserHandlerTestSuite) TestGet_UnknownUser() {
	s.queries.err = errs.ErrUserNotFound

	rec := s.perform(http.MethodGet, "/users/42", "")

	s.Equal(http.StatusNotFound, rec.Code)
}
