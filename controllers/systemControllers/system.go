package systemController

import (
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"

	"shopapi/database"
	"shopapi/middleware"
	"shopapi/models"
)

const version = "1.0.0"

var startTime = time.Now()

// tables that may be inspected through the system endpoints
var knownTables = map[string]interface{}{
	"users":           &models.User{},
	"items":           &models.Item{},
	"item_images":     &models.ItemImage{},
	"item_review":     &models.ItemReview{},
	"stats_snapshots": &models.StatsSnapshot{},
}

// Health reports service and database status
func Health(c *fiber.Ctx) error {
	dbStatus := "ok"

	sqlDB, err := database.Database.Db.DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
	}

	statusCode := fiber.StatusOK
	if dbStatus != "ok" {
		statusCode = fiber.StatusServiceUnavailable
	}

	return middleware.JsonResponse(c, statusCode, "Health check", fiber.Map{
		"status":   dbStatus,
		"version":  version,
		"uptime":   time.Since(startTime).String(),
		"database": dbStatus,
	})
}

// Info reports runtime details
func Info(c *fiber.Ctx) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return middleware.JsonResponse(c, fiber.StatusOK, "System info", fiber.Map{
		"goVersion":  runtime.Version(),
		"goroutines": runtime.NumGoroutine(),
		"allocBytes": mem.Alloc,
		"sysBytes":   mem.Sys,
		"numGC":      mem.NumGC,
	})
}

// Stats reports current row counts and the latest snapshot
func Stats(c *fiber.Ctx) error {
	db := database.Database.Db

	var userCount, itemCount, imageCount, reviewCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Item{}).Count(&itemCount)
	db.Model(&models.ItemImage{}).Count(&imageCount)
	db.Model(&models.ItemReview{}).Count(&reviewCount)

	data := fiber.Map{
		"users":       userCount,
		"items":       itemCount,
		"itemImages":  imageCount,
		"itemReviews": reviewCount,
	}

	var snapshot models.StatsSnapshot
	if err := db.Order("collected_at DESC").First(&snapshot).Error; err == nil {
		data["lastSnapshot"] = snapshot
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "System stats", data)
}

// Tables lists the tables present in the database
func Tables(c *fiber.Ctx) error {
	tables, err := database.Database.Db.Migrator().GetTables()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to list tables!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, "Tables retrieved successfully", tables)
}

// TableData returns a page of raw rows from a known table
func TableData(c *fiber.Ctx) error {
	name := c.Params("name")

	model, ok := knownTables[name]
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Unknown table", nil)
	}

	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 10)
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	db := database.Database.Db

	var total int64
	db.Model(model).Count(&total)

	var rows []map[string]interface{}
	if err := db.Model(model).Order("id").Offset(skip).Limit(limit).Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to fetch table data!", nil)
	}

	return middleware.JsonResponseWithMeta(c, fiber.StatusOK, "Table data retrieved successfully", rows,
		middleware.PaginationMeta(total, skip, limit))
}

// TableColumns lists column names and types for a known table
func TableColumns(c *fiber.Ctx) error {
	name := c.Params("name")

	model, ok := knownTables[name]
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Unknown table", nil)
	}

	columnTypes, err := database.Database.Db.Migrator().ColumnTypes(model)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to inspect table!", nil)
	}

	var columns []fiber.Map
	for _, col := range columnTypes {
		dbType, _ := col.ColumnType()
		nullable, _ := col.Nullable()
		columns = append(columns, fiber.Map{
			"name":     col.Name(),
			"type":     dbType,
			"nullable": nullable,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Columns retrieved successfully", columns)
}
