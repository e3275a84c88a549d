package systemController_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopapi/models"
	systemRoutes "shopapi/routers/systemRoutes"
	"shopapi/testutil"
)

type envelope struct {
	Header struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"header"`
	Body struct {
		Data     json.RawMessage `json:"data"`
		Metadata json.RawMessage `json:"metadata"`
	} `json:"body"`
}

func get(t *testing.T, app *fiber.App, path string) (int, envelope) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestHealth(t *testing.T) {
	testutil.SetupTestDB(t, "syshealth")
	app := fiber.New()
	systemRoutes.SetupSystemRoutes(app)

	code, env := get(t, app, "/health")
	require.Equal(t, fiber.StatusOK, code)

	var data struct {
		Status  string `json:"status"`
		Version string `json:"version"`
		Uptime  string `json:"uptime"`
	}
	require.NoError(t, json.Unmarshal(env.Body.Data, &data))
	assert.Equal(t, "ok", data.Status)
	assert.NotEmpty(t, data.Version)
	assert.NotEmpty(t, data.Uptime)
}

func TestStats(t *testing.T) {
	db := testutil.SetupTestDB(t, "sysstats")
	app := fiber.New()
	systemRoutes.SetupSystemRoutes(app)

	testutil.CreateTestUser(t, db, "alice", "alice@example.com", "password123")
	testutil.CreateTestItem(t, db, "Widget", 9.99)
	item := testutil.CreateTestItem(t, db, "Gadget", 19.99)
	require.NoError(t, db.Create(&models.ItemReview{ItemID: item.ID, UserID: 1, ReviewContent: "ok", Score: 3}).Error)

	code, env := get(t, app, "/system/stats")
	require.Equal(t, fiber.StatusOK, code)

	var data struct {
		Users       int64 `json:"users"`
		Items       int64 `json:"items"`
		ItemImages  int64 `json:"itemImages"`
		ItemReviews int64 `json:"itemReviews"`
	}
	require.NoError(t, json.Unmarshal(env.Body.Data, &data))
	assert.Equal(t, int64(1), data.Users)
	assert.Equal(t, int64(2), data.Items)
	assert.Equal(t, int64(0), data.ItemImages)
	assert.Equal(t, int64(1), data.ItemReviews)
}

func TestTables(t *testing.T) {
	testutil.SetupTestDB(t, "systables")
	app := fiber.New()
	systemRoutes.SetupSystemRoutes(app)

	code, env := get(t, app, "/system/tables")
	require.Equal(t, fiber.StatusOK, code)

	var tables []string
	require.NoError(t, json.Unmarshal(env.Body.Data, &tables))
	assert.Contains(t, tables, "users")
	assert.Contains(t, tables, "item_review")
}

func TestTableData(t *testing.T) {
	db := testutil.SetupTestDB(t, "systabledata")
	app := fiber.New()
	systemRoutes.SetupSystemRoutes(app)

	testutil.CreateTestUser(t, db, "alice", "alice@example.com", "password123")
	testutil.CreateTestUser(t, db, "bob", "bob@example.com", "password123")
	testutil.CreateTestUser(t, db, "carol", "carol@example.com", "password123")

	code, env := get(t, app, "/system/tables/users/data?skip=1&limit=2")
	require.Equal(t, fiber.StatusOK, code)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Body.Data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "bob", rows[0]["username"])
	assert.Equal(t, "carol", rows[1]["username"])

	var meta struct {
		Total int64 `json:"total"`
		Skip  int   `json:"skip"`
		Limit int   `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(env.Body.Metadata, &meta))
	assert.Equal(t, int64(3), meta.Total)
	assert.Equal(t, 1, meta.Skip)
	assert.Equal(t, 2, meta.Limit)

	code, _ = get(t, app, "/system/tables/secrets/data")
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestTableColumns(t *testing.T) {
	testutil.SetupTestDB(t, "syscolumns")
	app := fiber.New()
	systemRoutes.SetupSystemRoutes(app)

	code, env := get(t, app, "/system/tables/users/columns")
	require.Equal(t, fiber.StatusOK, code)

	var columns []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Body.Data, &columns))

	names := make([]string, 0, len(columns))
	for _, col := range columns {
		names = append(names, col.Name)
	}
	assert.Contains(t, names, "username")
	assert.Contains(t, names, "hashed_password")

	code, _ = get(t, app, "/system/tables/secrets/columns")
	assert.Equal(t, fiber.StatusNotFound, code)
}
