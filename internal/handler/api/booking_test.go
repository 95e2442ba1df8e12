//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DanSBol/shareit/internal/domain/booking"
	"github.com/DanSBol/shareit/internal/handler/api"
	"github.com/DanSBol/shareit/internal/handler/middleware"
	"github.com/DanSBol/shareit/internal/pkg/errs"
	"github.com/DanSBol/shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type stubBookingCommands struct {
	view *queries.BookingView
	err  error
}

func (s *stubBookingCommands) Create(context.Context, int64, int64, time.Time, time.Time) (*queries.BookingView, error) {
	return s.view, s.err
}

func (s *stubBookingCommands) Resolve(context.Context, int64, int64, bool) (*queries.BookingView, error) {
	return s.view, s.err
}

type stubBookingQueries struct {
	view  *queries.BookingView
	views []queries.BookingView
	err   error
}

func (s *stubBookingQueries) GetByID(context.Context, int64, int64) (*queries.BookingView, error) {
	return s.view, s.err
}

func (s *stubBookingQueries) ListByBooker(context.Context, int64, string, int, int) ([]queries.BookingView, error) {
	return s.views, s.err
}

func (s *stubBookingQueries) ListByOwner(context.Context, int64, string, int, int) ([]queries.BookingView, error) {
	return s.views, s.err
}

type BookingHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubBookingCommands
	queries  *stubBookingQueries
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.commands = &stubBookingCommands{}
	s.queries = &stubBookingQueries{}

	handler := api.NewBookingHandler(s.commands, s.queries)

	group := s.router.Group("/bookings")
	group.Use(middleware.RequireSharer())
	group.POST("", handler.Create)
	group.PATCH("/:id", handler.Resolve)
	group.GET("", handler.ListOwn)
	group.GET("/owner", handler.ListOwner)
	group.GET("/:id", handler.Get)
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) perform(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *BookingHandlerTestSuite) sharer(id string) map[string]string {
	return map[string]string{"X-Sharer-User-Id": id}
}

func (s *BookingHandlerTestSuite) sampleView() *queries.BookingView {
	return &queries.BookingView{
		ID:     1,
		Start:  time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
		End:    time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC),
		Status: "WAITING",
		Booker: queries.BookerRef{ID: 2, Name: "booker"},
		Item:   queries.ItemRef{ID: 10, Name: "drill", OwnerID: 1},
	}
}

func (s *BookingHandlerTestSuite) TestCreate() {
	body := `{"itemId":10,"start":"2025-06-02T12:00:00Z","end":"2025-06-03T12:00:00Z"}`

	s.Run("created", func() {
		s.commands.view, s.commands.err = s.sampleView(), nil

		rec := s.perform(http.MethodPost, "/bookings", body, s.sharer("2"))

		s.Equal(http.StatusCreated, rec.Code)
		var resp map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal("WAITING", resp["status"])
		s.Equal(float64(10), resp["item"].(map[string]any)["id"])
	})

	s.Run("missing identity header", func() {
		rec := s.perform(http.MethodPost, "/bookings", body, nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("malformed identity header", func() {
		rec := s.perform(http.MethodPost, "/bookings", body, s.sharer("not-a-number"))
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("malformed body", func() {
		rec := s.perform(http.MethodPost, "/bookings", `{"itemId":`, s.sharer("2"))
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unavailable item maps to 400", func() {
		s.commands.view, s.commands.err = nil, errs.ErrItemUnavailable

		rec := s.perform(http.MethodPost, "/bookings", body, s.sharer("2"))

		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "item is unavailable")
	})

	s.Run("owner booking own item maps to 404", func() {
		s.commands.view, s.commands.err = nil, errs.ErrOwnerBooking

		rec := s.perform(http.MethodPost, "/bookings", body, s.sharer("1"))

		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestResolve() {
	s.Run("approved", func() {
		view := s.sampleView()
		view.Status = "APPROVED"
		s.commands.view, s.commands.err = view, nil

		rec := s.perform(http.MethodPatch, "/bookings/1?approved=true", "", s.sharer("1"))

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "APPROVED")
	})

	s.Run("missing approved parameter", func() {
		rec := s.perform(http.MethodPatch, "/bookings/1", "", s.sharer("1"))
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("double approval maps to 400", func() {
		s.commands.view, s.commands.err = nil, booking.ErrAlreadyApproved

		rec := s.perform(http.MethodPatch, "/bookings/1?approved=true", "", s.sharer("1"))

		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "already approved")
	})

	s.Run("foreign owner maps to 404", func() {
		s.commands.view, s.commands.err = nil, errs.ErrNotOwner

		rec := s.perform(http.MethodPatch, "/bookings/1?approved=false", "", s.sharer("3"))

		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestGet() {
	s.Run("found", func() {
		s.queries.view, s.queries.err = s.sampleView(), nil

		rec := s.perform(http.MethodGet, "/bookings/1", "", s.sharer("2"))

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("stranger gets 404", func() {
		s.queries.view, s.queries.err = nil, errs.ErrNotOwnerOrBooker

		rec := s.perform(http.MethodGet, "/bookings/1", "", s.sharer("4"))

		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("malformed id", func() {
		rec := s.perform(http.MethodGet, "/bookings/abc", "", s.sharer("2"))
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestList() {
	s.Run("empty result is a JSON array", func() {
		s.queries.views, s.queries.err = []queries.BookingView{}, nil

		rec := s.perform(http.MethodGet, "/bookings?state=ALL", "", s.sharer("2"))

		s.Equal(http.StatusOK, rec.Code)
		s.Equal("[]", strings.TrimSpace(rec.Body.String()))
	})

	s.Run("unknown state maps to 400 with the token", func() {
		s.queries.views = nil
		_, s.queries.err = booking.ParseState("UNSUPPORTED_STATUS")

		rec := s.perform(http.MethodGet, "/bookings?state=UNSUPPORTED_STATUS", "", s.sharer("2"))

		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "UNSUPPORTED_STATUS")
	})

	s.Run("malformed from parameter", func() {
		rec := s.perform(http.MethodGet, "/bookings?from=x", "", s.sharer("2"))
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("owner listing", func() {
		s.queries.views, s.queries.err = []queries.BookingView{*s.sampleView()}, nil

		rec := s.perform(http.MethodGet, "/bookings/owner?state=WAITING", "", s.sharer("1"))

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"drill"`)
	})
}
