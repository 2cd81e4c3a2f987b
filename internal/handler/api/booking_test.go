//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"slotmarket/internal/domain/booking"
	"slotmarket/internal/domain/user"
	"slotmarket/internal/handler/api"
	resdto "slotmarket/internal/handler/dto/response"
	"slotmarket/internal/usecase/commands"
	"slotmarket/internal/usecase/queries"
	"slotmarket/tests/common/builder"
	"slotmarket/tests/common/httptest"
	"slotmarket/tests/common/testutil"
	commandsmock "slotmarket/tests/mock/commands"
	queriesmock "slotmarket/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockCommands     *commandsmock.MockBookingCommands
	mockQueries      *queriesmock.MockBookingQueries
	mockAvailability *queriesmock.MockAvailabilityQueries
	handler          *api.BookingHandler
	userID           uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.mockAvailability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries, s.mockAvailability)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleUser)
		c.Next()
	}

	s.router.GET("/bookings/check-slot", s.handler.CheckSlot)
	s.router.POST("/bookings", authMiddleware, s.handler.Create)
	s.router.GET("/bookings", authMiddleware, s.handler.List)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.Get)
	s.router.PATCH("/bookings/:id", authMiddleware, s.handler.Update)
	s.router.PUT("/bookings/:id", authMiddleware, s.handler.Update)
	s.router.DELETE("/bookings/:id", authMiddleware, s.handler.Delete)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"

	b := builder.NewBookingBuilder()
	reqBody := b.BuildCreateRequestDTO()
	returnView := b.BuildViewQuery()
	expectedResult := &commands.CreateBookingResult{BookingID: returnView.ID}

	missing := []testCaseBooking{
		{name: "missing field: service (required)", mutate: testutil.Field("service", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: date (required)", mutate: testutil.Field("date", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: time (required)", mutate: testutil.Field("time", nil), expectCode: http.StatusBadRequest},
	}

	malformed := []testCaseBooking{
		{name: "malformed date", mutate: testutil.Field("date", "15-03-2026"), expectCode: http.StatusBadRequest},
		{name: "malformed time", mutate: testutil.Field("time", "25:99"), expectCode: http.StatusBadRequest},
		{name: "short time form OK", mutate: testutil.Field("time", "10:00"), expectCode: http.StatusCreated},
		{name: "missing notes OK", mutate: testutil.Field("notes", nil), expectCode: http.StatusCreated},
	}

	allValidationTestCases := [][]testCaseBooking{missing, malformed}

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.userID).
			Return(expectedResult, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, user.RoleUser, returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(returnView.Status, response.Status)
		s.Equal(returnView.Price, response.Price)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, testCaseGroup := range allValidationTestCases {
			for _, tc := range testCaseGroup {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

					if tc.expectCode == http.StatusCreated {
						s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.userID).
							Return(expectedResult, nil).Times(1)
						s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, user.RoleUser, returnView.ID).
							Return(returnView, nil).Times(1)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
					if tc.expectCode == http.StatusCreated {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
					}
				})
			}
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "slot conflict",
				commandsError:  commands.ErrSlotConflict,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Slot already booked",
			},
			{
				name:           "service not found",
				commandsError:  commands.ErrServiceNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Service not found",
			},
			{
				name:           "service not bookable",
				commandsError:  commands.ErrServiceNotBookable,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Service not bookable",
			},
			{
				name:           "past time",
				commandsError:  booking.ErrPastTime,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Cannot book a past time",
			},
			{
				name:           "deleted user",
				commandsError:  commands.ErrUserDeleted,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "User is deleted",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.userID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestCheckSlot
// ================================================================================

func (s *BookingHandlerTestSuite) TestCheckSlot() {
	b := builder.NewBookingBuilder()
	key := b.BuildSlotKey()
	url := "/bookings/check-slot?service=" + key.ServiceID.String() +
		"&date=" + key.Date.String() + "&time=" + key.Time.String()

	s.Run("success: reports a free slot", func() {
		s.mockAvailability.EXPECT().CheckSlot(gomock.Any(), key).
			Return(true, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.CheckSlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Available)
	})

	s.Run("success: reports a taken slot", func() {
		s.mockAvailability.EXPECT().CheckSlot(gomock.Any(), key).
			Return(false, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.CheckSlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Available)
	})

	s.Run("error: 400 Bad Request for malformed params", func() {
		testCases := []struct {
			name string
			url  string
		}{
			{name: "bad service", url: "/bookings/check-slot?service=nope&date=2026-04-01&time=10:00"},
			{name: "bad date", url: "/bookings/check-slot?service=" + key.ServiceID.String() + "&date=01/04/2026&time=10:00"},
			{name: "bad time", url: "/bookings/check-slot?service=" + key.ServiceID.String() + "&date=2026-04-01&time=ten"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.url, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 404 Not Found for unknown service", func() {
		s.mockAvailability.EXPECT().CheckSlot(gomock.Any(), key).
			Return(false, queries.ErrServiceNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Service not found")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	returnView := builder.NewBookingBuilder().BuildViewQuery()
	returnView.ID = bookingID

	s.Run("success: returns 200 OK with BookingResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, user.RoleUser, bookingID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(bookingID, response.ID)
		s.Equal(returnView.Date, response.Date)
		s.Equal(returnView.Time, response.Time)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 Not Found for missing booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, user.RoleUser, bookingID).
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})

	s.Run("error: 403 Forbidden for someone else's booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, user.RoleUser, bookingID).
			Return(nil, queries.ErrBookingAccess).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestList() {
	url := "/bookings"

	item := builder.NewBookingBuilder().BuildListItem()

	s.Run("success: returns items and cursor", func() {
		next := &queries.Cursor{After: "next-page"}
		s.mockQueries.EXPECT().List(gomock.Any(), s.userID, user.RoleUser, gomock.Any(), nil, 0).
			Return([]*queries.BookingListItem{item}, next, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Items, 1)
		s.Equal(item.ID, response.Items[0].ID)
		s.Require().NotNil(response.NextCursor)
		s.Equal("next-page", *response.NextCursor)
	})

	s.Run("success: forwards filters, cursor and limit", func() {
		serviceID := uuid.New()
		status := booking.StatusConfirmed
		expectedFilters := queries.BookingFilters{ServiceID: &serviceID, Status: &status, Upcoming: true}
		s.mockQueries.EXPECT().List(gomock.Any(), s.userID, user.RoleUser, expectedFilters, &queries.Cursor{After: "abc"}, 5).
			Return(nil, nil, nil).Times(1)

		filtered := url + "?service_id=" + serviceID.String() + "&status=confirmed&upcoming=true&limit=5&after=abc"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, filtered, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request for malformed filters", func() {
		testCases := []struct {
			name  string
			query string
		}{
			{name: "bad service_id", query: "?service_id=nope"},
			{name: "bad status", query: "?status=paused"},
			{name: "bad date", query: "?date=last-tuesday"},
			{name: "bad upcoming", query: "?upcoming=maybe"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+tc.query, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid filters")
			})
		}
	})

	s.Run("error: 400 Bad Request for invalid cursor", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), s.userID, user.RoleUser, gomock.Any(), &queries.Cursor{After: "garbage"}, 0).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?after=garbage", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestUpdate
// ================================================================================

func (s *BookingHandlerTestSuite) TestUpdate() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	returnView := builder.NewBookingBuilder().BuildViewQuery()
	returnView.ID = bookingID
	reqBody := map[string]any{"status": "cancelled"}

	s.Run("success: returns 200 OK with the updated booking", func() {
		s.mockCommands.EXPECT().UpdateBooking(gomock.Any(), bookingID, gomock.Any(), s.userID, user.RoleUser).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, user.RoleUser, bookingID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(bookingID, response.ID)
	})

	s.Run("success: PUT behaves like PATCH", func() {
		s.mockCommands.EXPECT().UpdateBooking(gomock.Any(), bookingID, gomock.Any(), s.userID, user.RoleUser).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, user.RoleUser, bookingID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(bookingID, response.ID)
	})

	s.Run("error: 400 Bad Request for unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"status": "paused"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "booking not found",
				commandsError:  commands.ErrBookingNotFoundWrite,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Booking not found",
			},
			{
				name:           "not the owner",
				commandsError:  commands.ErrBookingNotOwned,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Forbidden",
			},
			{
				name:           "target slot taken",
				commandsError:  commands.ErrSlotConflict,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Slot already booked",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().UpdateBooking(gomock.Any(), bookingID, gomock.Any(), s.userID, user.RoleUser).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestDelete
// ================================================================================

func (s *BookingHandlerTestSuite) TestDelete() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().DeleteBooking(gomock.Any(), bookingID, s.userID, user.RoleUser).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for missing booking", func() {
		s.mockCommands.EXPECT().DeleteBooking(gomock.Any(), bookingID, s.userID, user.RoleUser).
			Return(commands.ErrBookingNotFoundWrite).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 403 Forbidden for someone else's booking", func() {
		s.mockCommands.EXPECT().DeleteBooking(gomock.Any(), bookingID, s.userID, user.RoleUser).
			Return(commands.ErrBookingNotOwned).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})
}
