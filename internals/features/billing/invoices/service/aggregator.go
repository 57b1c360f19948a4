// file: internals/features/billing/invoices/service/aggregator.go
package service

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	familyModel "tutorku_backend/internals/features/lessons/families/model"
	familyService "tutorku_backend/internals/features/lessons/families/service"
	lessonModel "tutorku_backend/internals/features/lessons/lessons/model"

	model "tutorku_backend/internals/features/billing/invoices/model"
	helper "tutorku_backend/internals/helpers"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrBatchLocked  = errors.New("billing batch is locked")
)

// BuildDrafts is the pure aggregation step: attribute every non-cancelled
// report of every billable lesson to a household and produce one
// line-itemized draft per household. Deterministic for identical input, so
// regeneration is idempotent.
func BuildDrafts(weekStart, weekEnd string, lessons []lessonModel.Lesson, families []familyModel.Family, loc *time.Location) ([]model.InvoiceDraft, error) {
	familyService.SortFamilies(families)

	sort.Slice(lessons, func(i, j int) bool {
		if !lessons[i].LessonStart.Equal(lessons[j].LessonStart) {
			return lessons[i].LessonStart.Before(lessons[j].LessonStart)
		}
		return lessons[i].LessonID.String() < lessons[j].LessonID.String()
	})

	byFamily := map[uuid.UUID]*model.InvoiceDraft{}
	var order []uuid.UUID

	for i := range lessons {
		lesson := &lessons[i]
		reports, err := lesson.Reports()
		if err != nil {
			return nil, fmt.Errorf("lesson %s reports: %w", lesson.LessonID, err)
		}

		studentIDs := make([]string, 0, len(reports))
		for sid := range reports {
			studentIDs = append(studentIDs, sid)
		}
		sort.Strings(studentIDs)

		for _, sid := range studentIDs {
			report := reports[sid]
			if strings.EqualFold(report.Status, lessonModel.ReportStatusCancelled) {
				continue
			}
			studentID, err := uuid.Parse(sid)
			if err != nil {
				log.Printf("[BILLING] lesson %s has malformed student id %q, skipped", lesson.LessonID, sid)
				continue
			}

			family := familyService.FindStudentFamily(families, studentID)
			if family == nil {
				log.Printf("[BILLING] no family for student %s (lesson %s), line skipped", studentID, lesson.LessonID)
				continue
			}

			draft, ok := byFamily[family.FamilyID]
			if !ok {
				draft = &model.InvoiceDraft{
					InvoiceDraftID:          uuid.New(),
					InvoiceDraftWeekStart:   weekStart,
					InvoiceDraftFamilyID:    family.FamilyID,
					InvoiceDraftFamilyName:  family.FamilyParentName,
					InvoiceDraftFamilyEmail: family.FamilyParentEmail,
				}
				byFamily[family.FamilyID] = draft
				order = append(order, family.FamilyID)
			}

			hours := lesson.DurationHours()
			draft.InvoiceLines = append(draft.InvoiceLines, model.InvoiceLine{
				InvoiceLineID:            uuid.New(),
				InvoiceLineDraftID:       draft.InvoiceDraftID,
				InvoiceLineLessonID:      lesson.LessonID,
				InvoiceLineStudentID:     studentID,
				InvoiceLineStudentName:   report.StudentName,
				InvoiceLineLessonDate:    lesson.LessonStart.In(loc).Format("2006-01-02"),
				InvoiceLineDurationHours: hours,
				InvoiceLineSubject:       lesson.LessonSubjectName,
				InvoiceLineTutorName:     lesson.LessonTutorName,
				InvoiceLineStatus:        report.Status,
			})
			draft.InvoiceDraftTotalHours += hours
			// amounts stay at the placeholder until the pricing step runs
		}
	}

	drafts := make([]model.InvoiceDraft, 0, len(order))
	for _, fid := range order {
		drafts = append(drafts, *byFamily[fid])
	}
	return drafts, nil
}

// GenerateWeeklyBatch scans the week window, rebuilds every household draft
// and replaces the week's lines in one transaction (delete-then-insert, so
// two concurrent runs cannot interleave half-written drafts). Refuses to
// touch a locked batch.
func GenerateWeeklyBatch(db *gorm.DB, weekStart, weekEnd string, loc *time.Location) (int, int, error) {
	if strings.TrimSpace(weekStart) == "" || strings.TrimSpace(weekEnd) == "" {
		return 0, 0, fmt.Errorf("%w: weekStart and weekEnd are required", ErrInvalidInput)
	}
	from, to, err := helper.WeekWindow(weekStart, weekEnd, loc)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var batch model.BillingBatch
	err = db.First(&batch, "batch_week_start = ?", weekStart).Error
	switch {
	case err == nil:
		if batch.BatchLocked {
			return 0, 0, ErrBatchLocked
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fresh week
	default:
		return 0, 0, err
	}

	var lessons []lessonModel.Lesson
	if err := db.Scopes(lessonModel.ScopeBillableWindow(from.UTC(), to.UTC())).
		Find(&lessons).Error; err != nil {
		return 0, 0, err
	}

	var families []familyModel.Family
	if err := db.Scopes(familyModel.ScopeAlive).Find(&families).Error; err != nil {
		return 0, 0, err
	}

	drafts, err := BuildDrafts(weekStart, weekEnd, lessons, families, loc)
	if err != nil {
		return 0, 0, err
	}
	if len(drafts) == 0 {
		log.Printf("[BILLING] week %s: no billable lines, nothing written", weekStart)
		return 0, 0, nil
	}

	lineCount := 0
	err = db.Transaction(func(tx *gorm.DB) error {
		// full replace of the week's drafts, atomically with the batch row
		var oldDraftIDs []uuid.UUID
		if err := tx.Model(&model.InvoiceDraft{}).
			Scopes(model.ScopeDraftsForWeek(weekStart)).
			Pluck("invoice_draft_id", &oldDraftIDs).Error; err != nil {
			return err
		}
		if len(oldDraftIDs) > 0 {
			if err := tx.Where("invoice_line_draft_id IN ?", oldDraftIDs).
				Delete(&model.InvoiceLine{}).Error; err != nil {
				return err
			}
			if err := tx.Where("invoice_draft_id IN ?", oldDraftIDs).
				Delete(&model.InvoiceDraft{}).Error; err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		batchRow := model.BillingBatch{
			BatchWeekStart:   weekStart,
			BatchWeekEnd:     weekEnd,
			BatchLocked:      false,
			BatchGeneratedAt: now,
		}
		if err := tx.Save(&batchRow).Error; err != nil {
			return err
		}

		for i := range drafts {
			lines := drafts[i].InvoiceLines
			drafts[i].InvoiceLines = nil
			if err := tx.Create(&drafts[i]).Error; err != nil {
				return err
			}
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
			lineCount += len(lines)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	log.Printf("[BILLING] week %s: %d drafts, %d lines generated", weekStart, len(drafts), lineCount)
	return len(drafts), lineCount, nil
}
