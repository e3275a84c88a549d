package itemController

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"shopapi/database"
	"shopapi/middleware"
	"shopapi/models"
	"shopapi/utils"
)

var itemSortColumns = map[string]bool{
	"id":         true,
	"name":       true,
	"price":      true,
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
	if !itemSortColumns[sortBy] {
		sortBy = "created_at"
	}
	sortDir := strings.ToLower(c.Query("sortDir", "desc"))
	if sortDir != "asc" && sortDir != "desc" {
		sortDir = "desc"
	}
	return skip, limit, sortBy + " " + sortDir
}

// CreateItem stores a new item
func CreateItem(c *fiber.Ctx) error {
	reqData := new(struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Tax         float64 `json:"tax"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
	}

	item := models.Item{
		Name:        reqData.Name,
		Description: reqData.Description,
		Price:       reqData.Price,
		Tax:         reqData.Tax,
	}

	if err := database.Database.Db.Create(&item).Error; err != nil {
		log.Printf("Error saving item to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to create item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Item created successfully", item)
}

// ListItems returns a paginated item list
func ListItems(c *fiber.Ctx) error {
	skip, limit, order := listParams(c)

	db := database.Database.Db

	var total int64
	db.Model(&models.Item{}).Count(&total)

	var items []models.Item
	if err := db.Order(order).Offset(skip).Limit(limit).Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to fetch items!", nil)
	}

	return middleware.JsonResponseWithMeta(c, fiber.StatusOK, "Items retrieved successfully", items,
		middleware.PaginationMeta(total, skip, limit))
}

// GetItem returns one item with its images
func GetItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid item ID!", nil)
	}

	var item models.Item
	if err := database.Database.Db.Preload("Images").First(&item, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Item not found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Item retrieved successfully", item)
}

// SearchItems filters items by name substring and price range
func SearchItems(c *fiber.Ctx) error {
	skip, limit, order := listParams(c)

	db := database.Database.Db
	query := db.Model(&models.Item{})

	if name := c.Query("name"); name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if minPrice := c.Query("minPrice"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("price >= ?", v)
		}
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("price <= ?", v)
		}
	}

	var total int64
	query.Count(&total)

	var items []models.Item
	if err := query.Order(order).Offset(skip).Limit(limit).Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to search items!", nil)
	}

	return middleware.JsonResponseWithMeta(c, fiber.StatusOK, "Items retrieved successfully", items,
		middleware.PaginationMeta(total, skip, limit))
}

// UpdateItem applies a partial update to an item
func UpdateItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid item ID!", nil)
	}

	reqData := new(struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Tax         *float64 `json:"tax"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var item models.Item
	if err := db.First(&item, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Item not found", nil)
	}

	if reqData.Name != nil {
		item.Name = *reqData.Name
	}
	if reqData.Description != nil {
		item.Description = *reqData.Description
	}
	if reqData.Price != nil {
		item.Price = *reqData.Price
	}
	if reqData.Tax != nil {
		item.Tax = *reqData.Tax
	}

	if err := db.Save(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to update item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Item updated successfully", item)
}

// DeleteItem removes an item, its reviews, and its images (rows and files)
func DeleteItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid item ID!", nil)
	}

	db := database.Database.Db

	var item models.Item
	if err := db.First(&item, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Item not found", nil)
	}

	var images []models.ItemImage
	db.Where("item_id = ?", item.ID).Find(&images)

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", item.ID).Delete(&models.ItemReview{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", item.ID).Delete(&models.ItemImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		log.Printf("Error deleting item %d: %v", item.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to delete item!", nil)
	}

	// Remove stored files after the rows are gone
	for _, img := range images {
		if err := utils.DeleteUploadedFile(img.ImagePath); err != nil {
			log.Printf("Error removing image file %s: %v", img.ImagePath, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Item deleted successfully", nil)
}
