//go:build integration

package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/Kir-Mi/shareit/internal/application"
	bookingDomain "github.com/Kir-Mi/shareit/internal/domain/booking"
	"github.com/Kir-Mi/shareit/internal/handler"
	"github.com/Kir-Mi/shareit/internal/middleware"
	"github.com/Kir-Mi/shareit/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupServer starts a PostgreSQL testcontainer, migrates the schema and
// wires the full HTTP stack against it. Event publishing is disabled; the
// booking flow does not depend on it.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_shareit",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	})

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_shareit sslmode=disable", pgHost, pgPort.Port())

	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.UserModel{},
		&repository.ItemRequestModel{},
		&repository.ItemModel{},
		&repository.BookingModel{},
		&repository.CommentModel{},
	))

	return buildRouter(db)
}

// buildRouter wires repositories, services and handlers the way the server
// binary does, minus Kafka and the health endpoints.
func buildRouter(db *gorm.DB) *gin.Engine {
	log := zap.NewNop()

	userRepo := repository.NewGormUserRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	requestRepo := repository.NewGormRequestRepository(db)

	validator := bookingDomain.NewValidator(userRepo)
	userService := application.NewUserService(userRepo, log)
	commentService := application.NewCommentService(commentRepo, itemRepo, userRepo, bookingRepo, log)
	itemService := application.NewItemService(itemRepo, userRepo, bookingRepo, commentService, log)
	bookingService := application.NewBookingService(bookingRepo, itemRepo, userRepo, validator, nil, log)
	requestService := application.NewRequestService(requestRepo, itemRepo, userRepo, log)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(log))

	handler.NewUserHandler(userService).RegisterRoutes(&router.RouterGroup)
	handler.NewItemHandler(itemService, commentService).RegisterRoutes(&router.RouterGroup)
	handler.NewBookingHandler(bookingService).RegisterRoutes(&router.RouterGroup)
	handler.NewRequestHandler(requestService).RegisterRoutes(&router.RouterGroup)
	return router
}

// doJSON performs an HTTP request against the router. A non-zero sharerID is
// sent in the X-Sharer-User-Id header.
func doJSON(t *testing.T, router *gin.Engine, method, path string, sharerID int64, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sharerID != 0 {
		req.Header.Set(middleware.SharerIDHeader, strconv.FormatInt(sharerID, 10))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a response body, failing the test on malformed JSON.
func decode(t *testing.T, rec *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target))
}

// createUser registers a user and returns its DTO.
func createUser(t *testing.T, router *gin.Engine, name, email string) application.UserDTO {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/users", 0, map[string]string{
		"name":  name,
		"email": email,
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	var user application.UserDTO
	decode(t, rec, &user)
	return user
}

// createItem lists an item for the owner and returns its DTO.
func createItem(t *testing.T, router *gin.Engine, ownerID int64, name, description string, available bool) application.ItemDTO {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/items", ownerID, map[string]interface{}{
		"name":        name,
		"description": description,
		"available":   available,
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	var item application.ItemDTO
	decode(t, rec, &item)
	return item
}

// createBooking books an item for the given window and returns the DTO.
func createBooking(t *testing.T, router *gin.Engine, bookerID, itemID int64, start, end time.Time) application.BookingDTO {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/bookings", bookerID, map[string]interface{}{
		"itemId": itemID,
		"start":  start.Format(time.RFC3339),
		"end":    end.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	var booking application.BookingDTO
	decode(t, rec, &booking)
	return booking
}
