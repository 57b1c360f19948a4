// file: internals/features/lessons/lessons/service/series_mutator.go
package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "tutorku_backend/internals/features/lessons/lessons/model"
)

// UpdateSeriesForward applies a typed patch to every instance of a series
// with start ≥ pivot. Time shifts are added to each instance's own bounds,
// never recomputed from a template. Instances before the pivot are never
// touched. Returns the updated count; (0, nil) when nothing matches.
func UpdateSeriesForward(db *gorm.DB, seriesID uuid.UUID, pivot time.Time, patch model.SeriesPatch) (int, error) {
	if seriesID == uuid.Nil || pivot.IsZero() {
		return 0, fmt.Errorf("%w: series id and pivot are required", ErrInvalidInput)
	}

	var lessons []model.Lesson
	if err := db.Scopes(model.ScopeSeriesFrom(seriesID, pivot)).
		Order("lesson_start").
		Find(&lessons).Error; err != nil {
		return 0, err
	}
	if len(lessons) == 0 {
		return 0, nil
	}

	for i := range lessons {
		patch.Apply(&lessons[i])
	}

	updated := 0
	for _, chunk := range chunkLessons(lessons, WriteChunkSize) {
		chunk := chunk
		if err := db.Transaction(func(tx *gorm.DB) error {
			for i := range chunk {
				if err := tx.Save(&chunk[i]).Error; err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			log.Printf("[SERIES] forward update failed after %d rows: %v", updated, err)
			return updated, &PartialCommitError{Written: updated, Err: err}
		}
		updated += len(chunk)
	}

	log.Printf("[SERIES] updated %d instances of series %s from %s", updated, seriesID, pivot.Format(time.RFC3339))
	return updated, nil
}

// DeleteSeriesForward permanently deletes every instance of a series with
// start ≥ pivot, in sequential ≤WriteChunkSize transactions.
func DeleteSeriesForward(db *gorm.DB, seriesID uuid.UUID, pivot time.Time) (int, error) {
	if seriesID == uuid.Nil || pivot.IsZero() {
		return 0, fmt.Errorf("%w: series id and pivot are required", ErrInvalidInput)
	}

	var ids []uuid.UUID
	if err := db.Model(&model.Lesson{}).
		Scopes(model.ScopeSeriesFrom(seriesID, pivot)).
		Order("lesson_start").
		Pluck("lesson_id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	deleted := 0
	for _, chunk := range chunkUUIDs(ids, WriteChunkSize) {
		chunk := chunk
		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Where("lesson_id IN ?", chunk).Delete(&model.Lesson{}).Error
		}); err != nil {
			log.Printf("[SERIES] forward delete failed after %d rows: %v", deleted, err)
			return deleted, &PartialCommitError{Written: deleted, Err: err}
		}
		deleted += len(chunk)
	}

	log.Printf("[SERIES] deleted %d instances of series %s from %s", deleted, seriesID, pivot.Format(time.RFC3339))
	return deleted, nil
}

func chunkUUIDs(ids []uuid.UUID, size int) [][]uuid.UUID {
	if size <= 0 {
		size = WriteChunkSize
	}
	var chunks [][]uuid.UUID
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
