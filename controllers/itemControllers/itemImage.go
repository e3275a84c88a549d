package itemController

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"shopapi/database"
	"shopapi/middleware"
	"shopapi/models"
	"shopapi/utils"
)

// AddItemImage stores an uploaded image for an item
func AddItemImage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid item ID!", nil)
	}

	db := database.Database.Db

	var item models.Item
	if err := db.First(&item, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Item not found", nil)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Image file is required!", nil)
	}

	saved, err := utils.SaveUploadedFile(fileHeader)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	image := models.ItemImage{
		ItemID:           item.ID,
		ImagePath:        saved.Path,
		ImageFilename:    saved.Filename,
		OriginalFilename: saved.OriginalFilename,
		FileExtension:    saved.Extension,
		FileSize:         saved.Size,
	}

	if err := db.Create(&image).Error; err != nil {
		// Row insert failed, do not leave the file behind
		if rmErr := utils.DeleteUploadedFile(saved.Path); rmErr != nil {
			log.Printf("Error removing file after failed insert: %v", rmErr)
		}
		log.Printf("Error saving item image to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to save image!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Image uploaded successfully", image)
}

// ListItemImages returns all images of an item, newest first
func ListItemImages(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid item ID!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Item{}, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Item not found", nil)
	}

	var images []models.ItemImage
	if err := db.Where("item_id = ?", id).Order("created_at DESC").Find(&images).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to fetch images!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Images retrieved successfully", images)
}

// DeleteItemImage removes one image row and its file
func DeleteItemImage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid item ID!", nil)
	}
	imageId, err := c.ParamsInt("imageId")
	if err != nil || imageId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid image ID!", nil)
	}

	db := database.Database.Db

	var image models.ItemImage
	if err := db.Where("id = ? AND item_id = ?", imageId, id).First(&image).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Image not found", nil)
	}

	if err := db.Delete(&image).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to delete image!", nil)
	}

	if err := utils.DeleteUploadedFile(image.ImagePath); err != nil {
		log.Printf("Error removing image file %s: %v", image.ImagePath, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Image deleted successfully", nil)
}
