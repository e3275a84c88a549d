package userController

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shopapi/config"
	"shopapi/database"
	"shopapi/middleware"
	"shopapi/models"
	"shopapi/utils"
)

var userSortColumns = map[string]bool{
	"id":         true,
	"username":   true,
	"email":      true,
	"created_at": true,
}

// listParams reads skip/limit/sort query params, clamped to sane values.
func listParams(c *fiber.Ctx, sortColumns map[string]bool) (skip, limit int, order string) {
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
	if !sortColumns[sortBy] {
		sortBy = "created_at"
	}
	sortDir := strings.ToLower(c.Query("sortDir", "desc"))
	if sortDir != "asc" && sortDir != "desc" {
		sortDir = "desc"
	}
	return skip, limit, sortBy + " " + sortDir
}

// CreateUser registers a new user
func CreateUser(c *fiber.Ctx) error {
	reqData := new(struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, "Email is already registered!", nil)
	}

	// Check if username already exists
	if err := db.Where("username = ?", reqData.Username).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, "Username is already registered!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Username:       reqData.Username,
		Email:          reqData.Email,
		HashedPassword: string(hashedPassword),
		IsActive:       true,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to create user!", nil)
	}

	go func(email, username string) {
		if err := utils.SendWelcomeEmail(email, username); err != nil {
			log.Printf("Error sending welcome email to %s: %v", email, err)
		}
	}(newUser.Email, newUser.Username)

	return middleware.JsonResponse(c, fiber.StatusCreated, "User created successfully", newUser)
}

// Login verifies credentials and returns a JWT
func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, "Incorrect email or password", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, "Incorrect email or password", nil)
	}

	if !user.IsActive {
		return middleware.JsonResponse(c, fiber.StatusForbidden, "Account is deactivated!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Username, user.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to process your request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Login successful", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// ListUsers returns a paginated user list
func ListUsers(c *fiber.Ctx) error {
	skip, limit, order := listParams(c, userSortColumns)

	db := database.Database.Db

	var total int64
	db.Model(&models.User{}).Count(&total)

	var users []models.User
	if err := db.Order(order).Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponseWithMeta(c, fiber.StatusOK, "Users retrieved successfully", users,
		middleware.PaginationMeta(total, skip, limit))
}

// GetUser returns one user by ID
func GetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid user ID!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "User not found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "User retrieved successfully", user)
}

// GetUserByEmail returns one user by email
func GetUserByEmail(c *fiber.Ctx) error {
	email := c.Params("email")

	var user models.User
	if err := database.Database.Db.Where("email = ?", email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "User not found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "User retrieved successfully", user)
}

// SearchUsers filters users by username/email substring
func SearchUsers(c *fiber.Ctx) error {
	skip, limit, order := listParams(c, userSortColumns)

	db := database.Database.Db
	query := db.Model(&models.User{})

	if username := c.Query("username"); username != "" {
		query = query.Where("LOWER(username) LIKE ?", "%"+strings.ToLower(username)+"%")
	}
	if email := c.Query("email"); email != "" {
		query = query.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(email)+"%")
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Order(order).Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to search users!", nil)
	}

	return middleware.JsonResponseWithMeta(c, fiber.StatusOK, "Users retrieved successfully", users,
		middleware.PaginationMeta(total, skip, limit))
}

// UpdateUser applies a partial update to a user
func UpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid user ID!", nil)
	}

	reqData := new(struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		IsActive *bool   `json:"isActive"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "User not found", nil)
	}

	if reqData.Email != nil && *reqData.Email != user.Email {
		if err := db.Where("email = ? AND id <> ?", *reqData.Email, user.ID).First(&models.User{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, "Email is already registered!", nil)
		}
		user.Email = *reqData.Email
	}
	if reqData.Username != nil && *reqData.Username != user.Username {
		if err := db.Where("username = ? AND id <> ?", *reqData.Username, user.ID).First(&models.User{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, "Username is already registered!", nil)
		}
		user.Username = *reqData.Username
	}
	if reqData.IsActive != nil {
		user.IsActive = *reqData.IsActive
	}

	if err := db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "User updated successfully", user)
}

// ChangePassword verifies the current password and stores a new hash
func ChangePassword(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid user ID!", nil)
	}

	reqData := new(struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "User not found", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(reqData.CurrentPassword)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, "Current password is incorrect!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to process your request!", nil)
	}

	user.HashedPassword = string(hashedPassword)
	if err := db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to update password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Password updated successfully", nil)
}

// DeleteUser removes a user and their reviews
func DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid user ID!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "User not found", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("usr_id = ?", user.ID).Delete(&models.ItemReview{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		log.Printf("Error deleting user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "User deleted successfully", nil)
}

// BulkUploadUsers registers users from an uploaded Excel file
func BulkUploadUsers(c *fiber.Ctx) error {
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

	rows, err := utils.ParseUserRows(src)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	result := utils.BulkUploadResult{Errors: []string{}}

	db := database.Database.Db
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			if row.Username == "" || row.Email == "" || row.Password == "" {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: username, email and password are required", row.RowNumber))
				result.ErrorCount++
				continue
			}

			if err := tx.Where("email = ?", row.Email).First(&models.User{}).Error; err == nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Email already exists", row.RowNumber))
				result.ErrorCount++
				continue
			}
			if err := tx.Where("username = ?", row.Username).First(&models.User{}).Error; err == nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Username already exists", row.RowNumber))
				result.ErrorCount++
				continue
			}

			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(row.Password), config.AppConfig.SaltRound)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row.RowNumber, err))
				result.ErrorCount++
				continue
			}

			user := models.User{
				Username:       row.Username,
				Email:          row.Email,
				HashedPassword: string(hashedPassword),
				IsActive:       true,
			}
			// a failed insert aborts the whole transaction on Postgres,
			// so guard each row with a savepoint
			sp := fmt.Sprintf("row_%d", row.RowNumber)
			if err := tx.SavePoint(sp).Error; err != nil {
				return err
			}
			if err := tx.Create(&user).Error; err != nil {
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
		log.Printf("Error during bulk user upload: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Bulk upload failed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Bulk upload completed", result)
}
