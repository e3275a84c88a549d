package reviewController

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"shopapi/database"
	"shopapi/middleware"
	"shopapi/models"
	"shopapi/utils"
)

var reviewSortColumns = map[string]bool{
	"id":         true,
	"score":      true,
	"confidence": true,
	"created_at": true,
}

func listParams(c *fiber.Ctx) (skip, limit int, order string) {
	skip = c.QueryInt("skip", 0)
	limit = c.QueryInt("limit", 10)
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	sortBy := c.Query("sortBy", "created_at")
	if !reviewSortColumns[sortBy] {
		sortBy = "created_at"
	}
	sortDir := strings.ToLower(c.Query("sortDir", "desc"))
	if sortDir != "asc" && sortDir != "desc" {
		sortDir = "desc"
	}
	return skip, limit, sortBy + " " + sortDir
}

// enrichSentiment analyzes a review's content and stores the result.
func enrichSentiment(reviewID uint, content string) {
	result := utils.AnalyzeSentiment(content)

	updates := map[string]interface{}{
		"sentiment":   result.Sentiment,
		"confidence":  result.Confidence,
		"explanation": result.Explanation,
	}
	if err := database.Database.Db.Model(&models.ItemReview{}).Where("id = ?", reviewID).Updates(updates).Error; err != nil {
		log.Printf("Error storing sentiment for review %d: %v", reviewID, err)
	}
}

// CreateReview stores a review and kicks off sentiment analysis
func CreateReview(c *fiber.Ctx) error {
	reqData := new(struct {
		ItemID  uint   `json:"itemId"`
		UserID  uint   `json:"userId"`
		Content string `json:"content"`
		Score   int    `json:"score"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Referenced rows must exist
	if err := db.First(&models.Item{}, reqData.ItemID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Item not found", nil)
	}
	if err := db.First(&models.User{}, reqData.UserID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "User not found", nil)
	}

	review := models.ItemReview{
		ItemID:        reqData.ItemID,
		UserID:        reqData.UserID,
		ReviewContent: reqData.Content,
		Score:         reqData.Score,
	}

	if err := db.Create(&review).Error; err != nil {
		log.Printf("Error saving review to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to create review!", nil)
	}

	go enrichSentiment(review.ID, review.ReviewContent)

	return middleware.JsonResponse(c, fiber.StatusCreated, "Review created successfully", review)
}

// ListReviews returns a paginated review list with optional filters
func ListReviews(c *fiber.Ctx) error {
	skip, limit, order := listParams(c)

	db := database.Database.Db
	query := db.Model(&models.ItemReview{})

	if itemId := c.QueryInt("itemId", 0); itemId > 0 {
		query = query.Where("item_id = ?", itemId)
	}
	if userId := c.QueryInt("userId", 0); userId > 0 {
		query = query.Where("usr_id = ?", userId)
	}
	if sentiment := c.Query("sentiment"); sentiment != "" {
		query = query.Where("sentiment = ?", sentiment)
	}

	var total int64
	query.Count(&total)

	var reviews []models.ItemReview
	if err := query.Order(order).Offset(skip).Limit(limit).Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponseWithMeta(c, fiber.StatusOK, "Reviews retrieved successfully", reviews,
		middleware.PaginationMeta(total, skip, limit))
}

// GetReview returns one review by ID
func GetReview(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid review ID!", nil)
	}

	var review models.ItemReview
	if err := database.Database.Db.First(&review, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Review not found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Review retrieved successfully", review)
}

// UpdateReview edits content/score; content changes re-run sentiment analysis
func UpdateReview(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid review ID!", nil)
	}

	reqData := new(struct {
		Content *string `json:"content"`
		Score   *int    `json:"score"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var review models.ItemReview
	if err := db.First(&review, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Review not found", nil)
	}

	contentChanged := false
	if reqData.Content != nil && *reqData.Content != review.ReviewContent {
		review.ReviewContent = *reqData.Content
		contentChanged = true
	}
	if reqData.Score != nil {
		review.Score = *reqData.Score
	}

	if err := db.Save(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to update review!", nil)
	}

	if contentChanged {
		go enrichSentiment(review.ID, review.ReviewContent)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Review updated successfully", review)
}

// DeleteReview removes a review
func DeleteReview(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid review ID!", nil)
	}

	db := database.Database.Db

	var review models.ItemReview
	if err := db.First(&review, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Review not found", nil)
	}

	if err := db.Delete(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to delete review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Review deleted successfully", nil)
}
