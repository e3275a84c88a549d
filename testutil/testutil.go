package testutil

import (
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"shopapi/config"
	"shopapi/database"
	"shopapi/models"
)

// SetupTestDB opens an in-memory SQLite database, migrates the schema, and
// installs it as the global database instance along with a test config.
// The name keeps databases of parallel test packages separate.
func SetupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:          "0",
		JWTKey:        "test-secret",
		SaltRound:     bcrypt.MinCost,
		UploadDir:     t.TempDir(),
		MaxUploadSize: 5 * 1024 * 1024,
	}

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.ItemImage{},
		&models.ItemReview{},
		&models.StatsSnapshot{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	database.Database = database.DbInstance{Db: db}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// CreateTestUser inserts a user with a bcrypt-hashed password.
func CreateTestUser(t *testing.T, db *gorm.DB, username, email, password string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		Username:       username,
		Email:          email,
		HashedPassword: string(hash),
		IsActive:       true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

// CreateTestItem inserts an item.
func CreateTestItem(t *testing.T, db *gorm.DB, name string, price float64) models.Item {
	t.Helper()

	item := models.Item{Name: name, Price: price}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create test item: %v", err)
	}
	return item
}

// BuildXlsx renders rows (first row = header) into xlsx bytes.
func BuildXlsx(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set sheet row: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	return buf.Bytes()
}
