package utils

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"

	"shopapi/config"
	"shopapi/database"
	"shopapi/models"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[STATS-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// CollectStatsSnapshot records the current row counts per table, stamped with
// the beginning of the current day so repeated runs replace the same slot.
func CollectStatsSnapshot() {
	db := database.Database.Db
	day := now.BeginningOfDay()

	snapshot := models.StatsSnapshot{CollectedAt: day}
	db.Model(&models.User{}).Count(&snapshot.UserCount)
	db.Model(&models.Item{}).Count(&snapshot.ItemCount)
	db.Model(&models.ItemImage{}).Count(&snapshot.ImageCount)
	db.Model(&models.ItemReview{}).Count(&snapshot.ReviewCount)

	// One snapshot per day
	var existing models.StatsSnapshot
	if err := db.Where("collected_at = ?", day).First(&existing).Error; err == nil {
		snapshot.ID = existing.ID
		if err := db.Save(&snapshot).Error; err != nil {
			logScheduler("Error saving stats snapshot: " + err.Error())
			return
		}
	} else if err := db.Create(&snapshot).Error; err != nil {
		logScheduler("Error saving stats snapshot: " + err.Error())
		return
	}

	logScheduler("Stats snapshot collected")
}

// SweepOrphanUploads deletes files in the upload directory that no
// item_images row references anymore.
func SweepOrphanUploads() {
	db := database.Database.Db
	uploadDir := config.AppConfig.UploadDir

	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		if !os.IsNotExist(err) {
			logScheduler("Error reading upload dir: " + err.Error())
		}
		return
	}

	var known []string
	if err := db.Model(&models.ItemImage{}).Pluck("image_filename", &known).Error; err != nil {
		logScheduler("Error fetching image filenames: " + err.Error())
		return
	}
	knownSet := make(map[string]bool, len(known))
	for _, name := range known {
		knownSet[name] = true
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || knownSet[entry.Name()] {
			continue
		}
		// Leave very recent files alone: an upload may not be committed yet
		info, err := entry.Info()
		if err != nil || time.Since(info.ModTime()) < time.Hour {
			continue
		}
		if err := os.Remove(filepath.Join(uploadDir, entry.Name())); err != nil {
			logScheduler("Error removing orphan file " + entry.Name() + ": " + err.Error())
			continue
		}
		removed++
	}

	if removed > 0 {
		logScheduler("Removed " + strconv.Itoa(removed) + " orphan upload(s)")
	}
}

// StartSchedulers launches the background cron jobs.
func StartSchedulers() *cron.Cron {
	c := cron.New()

	// Hourly orphan upload sweep
	if _, err := c.AddFunc("0 * * * *", SweepOrphanUploads); err != nil {
		log.Printf("Failed to schedule orphan sweep: %v", err)
	}

	// Daily stats snapshot at midnight
	if _, err := c.AddFunc("0 0 * * *", CollectStatsSnapshot); err != nil {
		log.Printf("Failed to schedule stats snapshot: %v", err)
	}

	c.Start()
	logScheduler("Schedulers started")
	return c
}
