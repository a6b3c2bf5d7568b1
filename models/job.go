package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jinzhu/gorm"
)

// A Job records one image turned into a grid, either from the command line
// (empty GuildID) or from a Discord guild.
type Job struct {
	gorm.Model
	GuildID    string `gorm:"index"`
	Source     string
	Thresholds string
	BlockSize  int
	Rows       int
	Cols       int
	ResultPath string
	BasePath   string
}

func (j Job) String() string {
	return fmt.Sprintf("Job{source=%v, thresholds=[%v], block=%d, grid=%dx%d}",
		j.Source, j.Thresholds, j.BlockSize, j.Cols, j.Rows)
}

// BeforeSave is executed just before a Job is saved into the DB
func (j *Job) BeforeSave() error {
	if j.Source == "" {
		return errors.New("missing job source")
	}
	if j.BlockSize <= 0 {
		return errors.New("job block size must be positive")
	}
	return nil
}

// Colors returns the number of levels the job's thresholds produce.
func (j Job) Colors() int {
	return len(strings.Fields(j.Thresholds)) + 1
}

// FormatThresholds turns a threshold set into its stored representation.
func FormatThresholds(thresholds []float64) string {
	parts := make([]string, len(thresholds))
	for i, t := range thresholds {
		parts[i] = strconv.FormatFloat(t, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

// RecordJob saves a job in the DB
func RecordJob(db *gorm.DB, j *Job) error {
	return db.Create(j).Error
}

// ListJobs returns the most recent jobs of given guild, newest first.
func ListJobs(db *gorm.DB, guildID string, limit int) (jobs []Job, err error) {
	err = db.Where("guild_id = ?", guildID).Order("created_at desc").Limit(limit).Find(&jobs).Error
	return
}

// Migrate creates or updates the tables used by greygrid.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Job{}).Error
}
