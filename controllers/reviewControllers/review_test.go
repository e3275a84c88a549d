package reviewController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shopapi/middleware"
	"shopapi/models"
	reviewRoutes "shopapi/routers/reviewRoutes"
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

func setup(t *testing.T, name string) (*fiber.App, *gorm.DB, string) {
	t.Helper()
	db := testutil.SetupTestDB(t, name)
	app := fiber.New()
	reviewRoutes.SetupReviewRoutes(app)

	user := testutil.CreateTestUser(t, db, "tester", "tester@example.com", "password123")
	token, err := middleware.GenerateJWT(user.ID, user.Username, user.Email)
	require.NoError(t, err)

	return app, db, token
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestCreateReview(t *testing.T) {
	app, db, token := setup(t, "reviewcreate")
	item := testutil.CreateTestItem(t, db, "Widget", 9.99)

	resp, env := doJSON(t, app, "POST", "/reviews/", fiber.Map{
		"itemId":  item.ID,
		"userId":  1,
		"content": "Works great!",
		"score":   5,
	}, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var review models.ItemReview
	require.NoError(t, json.Unmarshal(env.Body.Data, &review))
	assert.Equal(t, item.ID, review.ItemID)
	assert.Equal(t, 5, review.Score)

	// Without a configured sentiment API the async enrichment settles on neutral
	deadline := time.Now().Add(2 * time.Second)
	for {
		var stored models.ItemReview
		require.NoError(t, db.First(&stored, review.ID).Error)
		if stored.Sentiment == models.SentimentNeutral {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("sentiment never settled, got %q", stored.Sentiment)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCreateReviewScoreBounds(t *testing.T) {
	app, db, token := setup(t, "reviewscore")
	testutil.CreateTestItem(t, db, "Widget", 9.99)

	for _, score := range []int{0, 6} {
		resp, _ := doJSON(t, app, "POST", "/reviews/", fiber.Map{
			"itemId":  1,
			"userId":  1,
			"content": "x",
			"score":   score,
		}, token)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode, "score %d", score)
	}
}

func TestCreateReviewMissingReferences(t *testing.T) {
	app, db, token := setup(t, "reviewrefs")
	testutil.CreateTestItem(t, db, "Widget", 9.99)

	resp, _ := doJSON(t, app, "POST", "/reviews/", fiber.Map{
		"itemId":  999,
		"userId":  1,
		"content": "x",
		"score":   3,
	}, token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/reviews/", fiber.Map{
		"itemId":  1,
		"userId":  999,
		"content": "x",
		"score":   3,
	}, token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListReviewsFilters(t *testing.T) {
	app, db, _ := setup(t, "reviewlist")
	item1 := testutil.CreateTestItem(t, db, "Widget", 9.99)
	item2 := testutil.CreateTestItem(t, db, "Gadget", 19.99)

	reviews := []models.ItemReview{
		{ItemID: item1.ID, UserID: 1, ReviewContent: "good", Score: 5, Sentiment: models.SentimentPositive},
		{ItemID: item1.ID, UserID: 1, ReviewContent: "bad", Score: 1, Sentiment: models.SentimentNegative},
		{ItemID: item2.ID, UserID: 1, ReviewContent: "fine", Score: 3, Sentiment: models.SentimentNeutral},
	}
	for i := range reviews {
		require.NoError(t, db.Create(&reviews[i]).Error)
	}

	resp, env := doJSON(t, app, "GET", "/reviews/?itemId=1", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got []models.ItemReview
	require.NoError(t, json.Unmarshal(env.Body.Data, &got))
	assert.Len(t, got, 2)

	resp, env = doJSON(t, app, "GET", "/reviews/?sentiment=negative", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got = nil
	require.NoError(t, json.Unmarshal(env.Body.Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "bad", got[0].ReviewContent)

	resp, env = doJSON(t, app, "GET", "/reviews/?sortBy=score&sortDir=asc", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got = nil
	require.NoError(t, json.Unmarshal(env.Body.Data, &got))
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Score)
	assert.Equal(t, 5, got[2].Score)
}

func TestUpdateReview(t *testing.T) {
	app, db, token := setup(t, "reviewupdate")
	item := testutil.CreateTestItem(t, db, "Widget", 9.99)

	review := models.ItemReview{ItemID: item.ID, UserID: 1, ReviewContent: "meh", Score: 2}
	require.NoError(t, db.Create(&review).Error)

	resp, env := doJSON(t, app, "PUT", "/reviews/1", fiber.Map{"score": 4}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.ItemReview
	require.NoError(t, json.Unmarshal(env.Body.Data, &got))
	assert.Equal(t, 4, got.Score)
	assert.Equal(t, "meh", got.ReviewContent)
}

func TestDeleteReview(t *testing.T) {
	app, db, token := setup(t, "reviewdelete")
	item := testutil.CreateTestItem(t, db, "Widget", 9.99)

	review := models.ItemReview{ItemID: item.ID, UserID: 1, ReviewContent: "bye", Score: 1}
	require.NoError(t, db.Create(&review).Error)

	resp, _ := doJSON(t, app, "DELETE", "/reviews/1", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", "/reviews/1", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
