// file: internals/features/lessons/lessons/service/series_expander.go
package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "tutorku_backend/internals/features/lessons/lessons/model"
	helper "tutorku_backend/internals/helpers"
)

// WriteChunkSize caps one committed write batch. Anything larger is split
// into sequential chunks, each committing fully before the next begins.
const WriteChunkSize = 500

var ErrInvalidInput = errors.New("invalid input")

// PartialCommitError reports a multi-chunk write where earlier chunks
// committed and a later one failed. Committed rows stay committed; the
// caller decides whether to retry the remainder.
type PartialCommitError struct {
	Written int
	Err     error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("partial commit: %d rows written before failure: %v", e.Written, e.Err)
}

func (e *PartialCommitError) Unwrap() error { return e.Err }

// Occurrence is one (start, end) pair of an expanded series.
type Occurrence struct {
	Start time.Time
	End   time.Time
}

// ExpandOccurrences produces (start + k·interval, end + k·interval) for
// k = 0, 1, 2, … while start + k·interval ≤ horizon.
func ExpandOccurrences(start, end time.Time, interval time.Duration, horizon time.Time) []Occurrence {
	var out []Occurrence
	for k := 0; ; k++ {
		s := start.Add(time.Duration(k) * interval)
		if s.After(horizon) {
			break
		}
		out = append(out, Occurrence{Start: s, End: end.Add(time.Duration(k) * interval)})
	}
	return out
}

// CreateSeries expands a lesson template into concrete instances up to the
// end of the next calendar year (business zone) and inserts them in
// sequential ≤WriteChunkSize transactions. Returns the created count and
// the new series id.
func CreateSeries(db *gorm.DB, template *model.Lesson, cadence string, now time.Time, loc *time.Location) (int, uuid.UUID, error) {
	if template == nil || template.LessonStart.IsZero() || template.LessonEnd.IsZero() {
		return 0, uuid.Nil, fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !template.LessonEnd.After(template.LessonStart) {
		return 0, uuid.Nil, fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}
	interval, err := model.CadenceInterval(cadence)
	if err != nil {
		return 0, uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	horizon := helper.EndOfNextYear(now, loc)
	occurrences := ExpandOccurrences(template.LessonStart, template.LessonEnd, interval, horizon)

	seriesID := uuid.New()
	cadenceCopy := cadence
	instances := make([]model.Lesson, 0, len(occurrences))
	for _, occ := range occurrences {
		inst := *template
		inst.LessonID = uuid.New()
		inst.LessonStart = occ.Start.UTC()
		inst.LessonEnd = occ.End.UTC()
		inst.LessonSeriesID = &seriesID
		inst.LessonCadence = &cadenceCopy
		instances = append(instances, inst)
	}

	written := 0
	for _, chunk := range chunkLessons(instances, WriteChunkSize) {
		chunk := chunk
		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&chunk).Error
		}); err != nil {
			log.Printf("[SERIES] create chunk failed after %d rows: %v", written, err)
			return written, seriesID, &PartialCommitError{Written: written, Err: err}
		}
		written += len(chunk)
	}

	log.Printf("[SERIES] created %d instances for series %s (%s)", written, seriesID, cadence)
	return written, seriesID, nil
}

func chunkLessons(lessons []model.Lesson, size int) [][]model.Lesson {
	if size <= 0 {
		size = WriteChunkSize
	}
	var chunks [][]model.Lesson
	for start := 0; start < len(lessons); start += size {
		end := start + size
		if end > len(lessons) {
			end = len(lessons)
		}
		chunks = append(chunks, lessons[start:end])
	}
	return chunks
}
