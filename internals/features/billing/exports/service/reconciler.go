// file: internals/features/billing/exports/service/reconciler.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	xero "tutorku_backend/internals/features/accounting/xero/service"
	model "tutorku_backend/internals/features/billing/exports/model"
	invoiceModel "tutorku_backend/internals/features/billing/invoices/model"
	lessonModel "tutorku_backend/internals/features/lessons/lessons/model"
	tutorModel "tutorku_backend/internals/features/lessons/tutors/model"
	helper "tutorku_backend/internals/helpers"
)

var (
	ErrBatchNotFound = errors.New("billing batch not found")
	ErrNothingToDo   = errors.New("batch has no exportable lines")
)

// AccountingClient is what the reconciler needs from the remote platform.
// *xero.Client satisfies it.
type AccountingClient interface {
	ListContacts(ctx context.Context, token, tenantID string) ([]xero.Contact, error)
	ListEmployees(ctx context.Context, token, tenantID string) ([]xero.Employee, error)
	CreateInvoice(ctx context.Context, token, tenantID string, inv xero.Invoice) (string, error)
	CreateTimesheet(ctx context.Context, token, tenantID string, ts xero.Timesheet) (string, error)
}

// TokenProvider is satisfied by the xero token service.
type TokenProvider interface {
	GetValidToken(ctx context.Context) (accessToken, tenantID string, err error)
}

// ExportResult is the caller-facing outcome of one reconciliation pass.
type ExportResult struct {
	Exported     int      `json:"exported"`
	Errors       int      `json:"errors"`
	Results      []string `json:"results"`
	ErrorDetails []string `json:"error_details"`
}

type Reconciler struct {
	DB     *gorm.DB
	Client AccountingClient
	Tokens TokenProvider
	Loc    *time.Location
}

func NewReconciler(db *gorm.DB, client AccountingClient, tokens TokenProvider, loc *time.Location) *Reconciler {
	return &Reconciler{DB: db, Client: client, Tokens: tokens, Loc: loc}
}

/* =========================
   Invoices pass
   ========================= */

// ExportInvoices reconciles one week's locked-or-unlocked batch against the
// remote platform. Per-draft failures are recorded and skipped over; the
// pass itself only fails on preconditions (missing batch, credential). The
// batch is locked afterwards regardless of per-line errors, so callers must
// inspect the error count.
func (r *Reconciler) ExportInvoices(ctx context.Context, weekStart string) (*ExportResult, error) {
	var batch invoiceModel.BillingBatch
	if err := r.DB.First(&batch, "batch_week_start = ?", weekStart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}

	var drafts []invoiceModel.InvoiceDraft
	if err := r.DB.Scopes(invoiceModel.ScopeDraftsForWeek(weekStart)).
		Preload("InvoiceLines").
		Order("invoice_draft_family_name").
		Find(&drafts).Error; err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, ErrNothingToDo
	}

	token, tenantID, err := r.Tokens.GetValidToken(ctx)
	if err != nil {
		return nil, err
	}

	contacts, err := r.Client.ListContacts(ctx, token, tenantID)
	if err != nil {
		return nil, fmt.Errorf("contact directory fetch failed: %w", err)
	}

	result := &ExportResult{}
	for i := range drafts {
		draft := &drafts[i]

		// idempotency guard: a draft exported on a previous pass is never
		// re-submitted
		if draft.InvoiceDraftExported && draft.InvoiceDraftXeroInvoiceID != nil {
			result.Results = append(result.Results, fmt.Sprintf(
				"%s: already exported as %s", draft.InvoiceDraftFamilyName, *draft.InvoiceDraftXeroInvoiceID))
			continue
		}

		contact := MatchContactByEmail(contacts, draft.InvoiceDraftFamilyEmail)
		if contact == nil {
			result.ErrorDetails = append(result.ErrorDetails, fmt.Sprintf(
				"counterpart not found for email: %s", draft.InvoiceDraftFamilyEmail))
			continue
		}

		inv, err := BuildRemoteInvoice(draft, draft.InvoiceLines, batch.BatchWeekEnd, contact.ContactID, r.Loc)
		if err != nil {
			result.ErrorDetails = append(result.ErrorDetails, fmt.Sprintf(
				"%s: %v", draft.InvoiceDraftFamilyName, err))
			continue
		}

		remoteID, err := r.Client.CreateInvoice(ctx, token, tenantID, inv)
		if err != nil {
			var remote *xero.RemoteError
			if errors.As(err, &remote) {
				result.ErrorDetails = append(result.ErrorDetails, remote.Body)
			} else {
				result.ErrorDetails = append(result.ErrorDetails, err.Error())
			}
			continue
		}

		draft.InvoiceDraftExported = true
		draft.InvoiceDraftXeroInvoiceID = &remoteID
		if err := r.DB.Model(&invoiceModel.InvoiceDraft{}).
			Where("invoice_draft_id = ?", draft.InvoiceDraftID).
			Updates(map[string]interface{}{
				"invoice_draft_exported":        true,
				"invoice_draft_xero_invoice_id": remoteID,
			}).Error; err != nil {
			// remote document exists but the local flag write failed: a
			// reconciliation discrepancy for manual follow-up, never an
			// automatic retry
			result.ErrorDetails = append(result.ErrorDetails, fmt.Sprintf(
				"reconciliation discrepancy: remote invoice %s created for %s but local flag write failed: %v",
				remoteID, draft.InvoiceDraftFamilyName, err))
			continue
		}

		result.Results = append(result.Results, fmt.Sprintf(
			"%s: invoice %s", draft.InvoiceDraftFamilyName, remoteID))
	}

	result.Exported = len(result.Results)
	result.Errors = len(result.ErrorDetails)

	if err := r.finalize(model.ExportTypeInvoices, weekStart, result, &batch); err != nil {
		return result, err
	}
	return result, nil
}

/* =========================
   Payroll pass
   ========================= */

// ExportPayroll aggregates the week's tutor hours into payroll lines and
// exports a timesheet per line, with the same per-line error discipline.
func (r *Reconciler) ExportPayroll(ctx context.Context, weekStart string) (*ExportResult, error) {
	weekEnd, err := weekEndOf(weekStart, r.Loc)
	if err != nil {
		return nil, err
	}
	from, to, err := helper.WeekWindow(weekStart, weekEnd, r.Loc)
	if err != nil {
		return nil, err
	}

	var lessons []lessonModel.Lesson
	if err := r.DB.Scopes(lessonModel.ScopeBillableWindow(from.UTC(), to.UTC())).
		Find(&lessons).Error; err != nil {
		return nil, err
	}

	var tutors []tutorModel.Tutor
	if err := r.DB.Scopes(tutorModel.ScopeAlive).Find(&tutors).Error; err != nil {
		return nil, err
	}

	lines, err := r.upsertPayrollLines(weekStart, lessons, tutors)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNothingToDo
	}

	token, tenantID, err := r.Tokens.GetValidToken(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := r.Client.ListEmployees(ctx, token, tenantID)
	if err != nil {
		return nil, fmt.Errorf("employee directory fetch failed: %w", err)
	}

	result := &ExportResult{}
	for i := range lines {
		line := &lines[i]

		if line.PayrollLineExported && line.PayrollLineXeroTimesheetID != nil {
			result.Results = append(result.Results, fmt.Sprintf(
				"%s: already exported as %s", line.PayrollLineTutorName, *line.PayrollLineXeroTimesheetID))
			continue
		}

		emp := MatchEmployeeByEmail(employees, line.PayrollLineTutorEmail)
		if emp == nil {
			result.ErrorDetails = append(result.ErrorDetails, fmt.Sprintf(
				"counterpart not found for email: %s", line.PayrollLineTutorEmail))
			continue
		}

		remoteID, err := r.Client.CreateTimesheet(ctx, token, tenantID, BuildTimesheet(line, emp, weekEnd))
		if err != nil {
			var remote *xero.RemoteError
			if errors.As(err, &remote) {
				result.ErrorDetails = append(result.ErrorDetails, remote.Body)
			} else {
				result.ErrorDetails = append(result.ErrorDetails, err.Error())
			}
			continue
		}

		if err := r.DB.Model(&model.PayrollLine{}).
			Where("payroll_line_id = ?", line.PayrollLineID).
			Updates(map[string]interface{}{
				"payroll_line_exported":          true,
				"payroll_line_xero_timesheet_id": remoteID,
				"payroll_line_updated_at":        time.Now().UTC(),
			}).Error; err != nil {
			result.ErrorDetails = append(result.ErrorDetails, fmt.Sprintf(
				"reconciliation discrepancy: remote timesheet %s created for %s but local flag write failed: %v",
				remoteID, line.PayrollLineTutorName, err))
			continue
		}

		result.Results = append(result.Results, fmt.Sprintf(
			"%s: timesheet %s", line.PayrollLineTutorName, remoteID))
	}

	result.Exported = len(result.Results)
	result.Errors = len(result.ErrorDetails)

	if err := r.finalize(model.ExportTypePayroll, weekStart, result, nil); err != nil {
		return result, err
	}
	return result, nil
}

/* =========================
   Internals
   ========================= */

// upsertPayrollLines persists fresh aggregation results while preserving
// already-exported lines untouched (their hours are frozen at export time).
func (r *Reconciler) upsertPayrollLines(weekStart string, lessons []lessonModel.Lesson, tutors []tutorModel.Tutor) ([]model.PayrollLine, error) {
	fresh := BuildPayrollLines(weekStart, lessons, tutors)

	var existing []model.PayrollLine
	if err := r.DB.Where("payroll_line_week_start = ?", weekStart).Find(&existing).Error; err != nil {
		return nil, err
	}
	byTutor := map[string]*model.PayrollLine{}
	for i := range existing {
		byTutor[existing[i].PayrollLineTutorID.String()] = &existing[i]
	}

	out := make([]model.PayrollLine, 0, len(fresh))
	for _, line := range fresh {
		if prev, ok := byTutor[line.PayrollLineTutorID.String()]; ok {
			if prev.PayrollLineExported {
				out = append(out, *prev)
				continue
			}
			prev.PayrollLineTutorName = line.PayrollLineTutorName
			prev.PayrollLineTutorEmail = line.PayrollLineTutorEmail
			prev.PayrollLineTotalHours = line.PayrollLineTotalHours
			prev.PayrollLineUpdatedAt = time.Now().UTC()
			if err := r.DB.Save(prev).Error; err != nil {
				return nil, err
			}
			out = append(out, *prev)
			continue
		}
		if err := r.DB.Create(&line).Error; err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, nil
}

// finalize writes the immutable audit record and, for invoice passes, locks
// the batch. Locking happens regardless of per-line failures.
func (r *Reconciler) finalize(exportType, weekStart string, result *ExportResult, batch *invoiceModel.BillingBatch) error {
	record, err := model.NewExportRecord(exportType, weekStart, result.Results, result.ErrorDetails)
	if err != nil {
		return err
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		if batch != nil {
			now := time.Now().UTC()
			if err := tx.Model(&invoiceModel.BillingBatch{}).
				Where("batch_week_start = ?", batch.BatchWeekStart).
				Updates(map[string]interface{}{
					"batch_locked":      true,
					"batch_exported_at": now,
				}).Error; err != nil {
				return err
			}
			log.Printf("[EXPORT] week %s locked: %d exported, %d errors",
				weekStart, result.Exported, result.Errors)
		} else {
			log.Printf("[EXPORT] payroll week %s: %d exported, %d errors",
				weekStart, result.Exported, result.Errors)
		}
		return nil
	})
}

func weekEndOf(weekStart string, loc *time.Location) (string, error) {
	day, err := time.ParseInLocation("2006-01-02", weekStart, loc)
	if err != nil {
		return "", fmt.Errorf("weekStart: %w", err)
	}
	return day.AddDate(0, 0, 6).Format("2006-01-02"), nil
}
