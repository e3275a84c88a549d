package utils_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopapi/config"
	"shopapi/models"
	"shopapi/testutil"
	"shopapi/utils"
)

func TestCollectStatsSnapshot(t *testing.T) {
	db := testutil.SetupTestDB(t, "statssnap")
	testutil.CreateTestUser(t, db, "alice", "alice@example.com", "password123")
	testutil.CreateTestItem(t, db, "Widget", 9.99)
	testutil.CreateTestItem(t, db, "Gadget", 19.99)

	utils.CollectStatsSnapshot()

	var snapshot models.StatsSnapshot
	require.NoError(t, db.First(&snapshot).Error)
	assert.Equal(t, int64(1), snapshot.UserCount)
	assert.Equal(t, int64(2), snapshot.ItemCount)

	// Second run the same day replaces the snapshot instead of appending
	testutil.CreateTestItem(t, db, "Doohickey", 1)
	utils.CollectStatsSnapshot()

	var count int64
	db.Model(&models.StatsSnapshot{}).Count(&count)
	assert.Equal(t, int64(1), count)

	require.NoError(t, db.First(&snapshot).Error)
	assert.Equal(t, int64(3), snapshot.ItemCount)
}

func TestSweepOrphanUploads(t *testing.T) {
	db := testutil.SetupTestDB(t, "statssweep")
	uploadDir := config.AppConfig.UploadDir

	// Referenced file must survive
	kept := filepath.Join(uploadDir, "kept.png")
	require.NoError(t, os.WriteFile(kept, []byte("png"), 0644))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(kept, old, old))

	item := testutil.CreateTestItem(t, db, "Widget", 9.99)
	img := models.ItemImage{ItemID: item.ID, ImagePath: kept, ImageFilename: "kept.png"}
	require.NoError(t, db.Create(&img).Error)

	// Old unreferenced file must go
	orphan := filepath.Join(uploadDir, "orphan.png")
	require.NoError(t, os.WriteFile(orphan, []byte("png"), 0644))
	require.NoError(t, os.Chtimes(orphan, old, old))

	// Fresh unreferenced file must survive the grace period
	fresh := filepath.Join(uploadDir, "fresh.png")
	require.NoError(t, os.WriteFile(fresh, []byte("png"), 0644))

	utils.SweepOrphanUploads()

	_, err := os.Stat(kept)
	assert.NoError(t, err)
	_, err = os.Stat(orphan)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}
