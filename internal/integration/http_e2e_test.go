//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	httpserver "hotels_api/internal/adapters/http_server"
	"hotels_api/internal/app"
	"hotels_api/internal/auth"
	"hotels_api/internal/domain"
	"hotels_api/internal/storage/sqlstore"
	f "hotels_api/internal/storage/sqlstore/sqlstoretest"
)

// startMySQL runs an isolated MySQL container and returns a migrated store.
func startMySQL(t *testing.T) *gorm.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "dockertest")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hotels",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "run mysql")
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/hotels?parseTime=true&charset=utf8mb4&loc=UTC",
		resource.GetPort("3306/tcp"))

	pool.MaxWait = 2 * time.Minute
	var db *gorm.DB
	require.NoError(t, pool.Retry(func() error {
		var e error
		db, e = sqlstore.Open("mysql", dsn)
		return e
	}), "connect mysql")
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, sqlstore.Migrate(db))
	return db
}

func TestHTTP_EndToEnd_MySQL(t *testing.T) {
	db := startMySQL(t)
	repo := sqlstore.New(db)
	signer := auth.NewSigner("e2e-secret", time.Hour)

	srv := httpserver.New(10 * time.Second)
	srv.MountHandlers(
		&httpserver.Handlers{Hotels: app.NewHotelService(repo, repo, repo)},
		httpserver.NewAuthenticator(signer, repo, "sql"),
	)
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	get := func(path, token string) *http.Response {
		req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
		require.NoError(t, err)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { _ = res.Body.Close() })
		return res
	}

	u := f.CreateUser(t, db)
	token := f.GenerateValidToken(t, db, signer, u)
	enrollment := f.CreateEnrollmentWithAddress(t, db, u)
	reserved := f.CreateTicketType(t, db, true)
	tk := f.CreateTicket(t, db, enrollment.ID, reserved.ID, domain.TicketReserved)

	assert.Equal(t, http.StatusUnauthorized, get("/hotels", "").StatusCode)
	assert.Equal(t, http.StatusPaymentRequired, get("/hotels", token).StatusCode)

	// payment confirmed upstream
	require.NoError(t, db.Model(&sqlstore.Ticket{}).Where("id = ?", tk.ID).Update("status", string(domain.TicketPaid)).Error)

	h := f.CreateHotel(t, db)
	room := f.CreateRoom(t, db, h)

	res := get("/hotels", token)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var list []domain.Hotel
	require.NoError(t, json.NewDecoder(res.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, h.Name, list[0].Name)

	res = get(fmt.Sprintf("/hotels/%d", h.ID), token)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var detail domain.HotelWithRooms
	require.NoError(t, json.NewDecoder(res.Body).Decode(&detail))
	require.Len(t, detail.Rooms, 1)
	assert.Equal(t, room.ID, detail.Rooms[0].ID)

	assert.Equal(t, http.StatusNotFound, get(fmt.Sprintf("/hotels/%d", h.ID+100), token).StatusCode)
}

func TestRepo_MySQL_UpsertHotel(t *testing.T) {
	db := startMySQL(t)
	repo := sqlstore.New(db)
	ctx := context.Background()

	in := domain.HotelWithRooms{
		Hotel: domain.Hotel{ID: 10001, Name: "Hotel Test", Image: "https://img/test.jpg"},
		Rooms: []domain.Room{{Name: "Single", Capacity: 1}, {Name: "Double", Capacity: 2}},
	}
	require.NoError(t, repo.UpsertHotel(ctx, in))
	in.Rooms = in.Rooms[:1]
	require.NoError(t, repo.UpsertHotel(ctx, in))
	require.NoError(t, repo.LogMiss(ctx, 10002, 404, "not found"))
	require.NoError(t, repo.LogMiss(ctx, 10002, 404, "not found"))

	got, err := repo.FindHotelByID(ctx, 10001)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Hotel Test", got.Name)
	assert.Len(t, got.Rooms, 1)
}
