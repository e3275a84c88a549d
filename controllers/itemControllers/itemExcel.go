package itemController

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"shopapi/database"
	"shopapi/middleware"
	"shopapi/models"
	"shopapi/utils"
)

// BulkUploadItems creates items from an uploaded Excel file
func BulkUploadItems(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "File is required!", nil)
	}

	if !strings.HasSuffix(fileHeader.Filename, ".xlsx") && !strings.HasSuffix(fileHeader.Filename, ".xls") {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Only Excel files are allowed", nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Failed to read uploaded file!", nil)
	}
	defer src.Close()

	rows, err := utils.ParseItemRows(src)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := utils.BulkUploadResult{Errors: []string{}}

	db := database.Database.Db
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			if row.Err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row.RowNumber, row.Err))
				result.ErrorCount++
				continue
			}
			if row.Name == "" {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: name is required", row.RowNumber))
				result.ErrorCount++
				continue
			}
			if row.Price < 0 || row.Tax < 0 {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: price and tax must not be negative", row.RowNumber))
				result.ErrorCount++
				continue
			}

			item := models.Item{
				Name:        row.Name,
				Description: row.Description,
				Price:       row.Price,
				Tax:         row.Tax,
			}
			// a failed insert aborts the whole transaction on Postgres,
			// so guard each row with a savepoint
			sp := fmt.Sprintf("row_%d", row.RowNumber)
			if err := tx.SavePoint(sp).Error; err != nil {
				return err
			}
			if err := tx.Create(&item).Error; err != nil {
				tx.RollbackTo(sp)
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row.RowNumber, err))
				result.ErrorCount++
				continue
			}

			result.SuccessCount++
		}
		return nil
	})
	if err != nil {
		log.Printf("Error during bulk item upload: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Bulk upload failed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Bulk upload completed", result)
}

// ExportItems streams all items as an xlsx download
func ExportItems(c *fiber.Ctx) error {
	db := database.Database.Db

	var items []models.Item
	if err := db.Order("id asc").Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to fetch items!", nil)
	}

	buf, err := utils.WriteItemsExcel(items)
	if err != nil {
		log.Printf("Error building item export: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to export items!", nil)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="items.xlsx"`)
	return c.Send(buf.Bytes())
}
