// file: internals/features/billing/invoices/model/billing_batch_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: billing_batches
   ========================= */

// BillingBatch is the week-scoped, lockable collection of invoice drafts.
// While locked, line items must never be regenerated; locking happens
// exactly once, by the export reconciler.
type BillingBatch struct {
	// ISO week start, "YYYY-MM-DD" in the business zone
	BatchWeekStart string `json:"batch_week_start" gorm:"column:batch_week_start;type:date;primaryKey"`
	BatchWeekEnd   string `json:"batch_week_end"   gorm:"column:batch_week_end;type:date;not null"`

	BatchLocked      bool       `json:"batch_locked"                 gorm:"column:batch_locked;not null;default:false"`
	BatchGeneratedAt time.Time  `json:"batch_generated_at"           gorm:"column:batch_generated_at;type:timestamptz;not null;default:now()"`
	BatchExportedAt  *time.Time `json:"batch_exported_at,omitempty"  gorm:"column:batch_exported_at;type:timestamptz"`
}

func (BillingBatch) TableName() string { return "billing_batches" }

/* =========================
   Model: invoice_drafts
   ========================= */

type InvoiceDraft struct {
	InvoiceDraftID uuid.UUID `json:"invoice_draft_id" gorm:"column:invoice_draft_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	InvoiceDraftWeekStart string `json:"invoice_draft_week_start" gorm:"column:invoice_draft_week_start;type:date;not null;index"`

	InvoiceDraftFamilyID    uuid.UUID `json:"invoice_draft_family_id"    gorm:"column:invoice_draft_family_id;type:uuid;not null"`
	InvoiceDraftFamilyName  string    `json:"invoice_draft_family_name"  gorm:"column:invoice_draft_family_name;type:text;not null"`
	InvoiceDraftFamilyEmail string    `json:"invoice_draft_family_email" gorm:"column:invoice_draft_family_email;type:text;not null"`

	InvoiceDraftTotalHours  float64 `json:"invoice_draft_total_hours"  gorm:"column:invoice_draft_total_hours;type:numeric;not null;default:0"`
	InvoiceDraftTotalAmount float64 `json:"invoice_draft_total_amount" gorm:"column:invoice_draft_total_amount;type:numeric;not null;default:0"`

	// export reconciliation state
	InvoiceDraftExported      bool    `json:"invoice_draft_exported"                  gorm:"column:invoice_draft_exported;not null;default:false"`
	InvoiceDraftXeroInvoiceID *string `json:"invoice_draft_xero_invoice_id,omitempty" gorm:"column:invoice_draft_xero_invoice_id;type:text"`

	// optional Midtrans Snap token for a payment link
	InvoiceDraftPaymentToken *string `json:"invoice_draft_payment_token,omitempty" gorm:"column:invoice_draft_payment_token;type:text"`

	InvoiceDraftCreatedAt time.Time `json:"invoice_draft_created_at" gorm:"column:invoice_draft_created_at;type:timestamptz;not null;default:now()"`

	InvoiceLines []InvoiceLine `json:"invoice_lines,omitempty" gorm:"foreignKey:InvoiceLineDraftID;references:InvoiceDraftID"`
}

func (InvoiceDraft) TableName() string { return "invoice_drafts" }

/* =========================
   Model: invoice_lines
   ========================= */

type InvoiceLine struct {
	InvoiceLineID      uuid.UUID `json:"invoice_line_id"       gorm:"column:invoice_line_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceLineDraftID uuid.UUID `json:"invoice_line_draft_id" gorm:"column:invoice_line_draft_id;type:uuid;not null;index"`

	InvoiceLineLessonID    uuid.UUID `json:"invoice_line_lesson_id"    gorm:"column:invoice_line_lesson_id;type:uuid;not null"`
	InvoiceLineStudentID   uuid.UUID `json:"invoice_line_student_id"   gorm:"column:invoice_line_student_id;type:uuid;not null"`
	InvoiceLineStudentName string    `json:"invoice_line_student_name" gorm:"column:invoice_line_student_name;type:text"`

	// "YYYY-MM-DD" in the business zone
	InvoiceLineLessonDate string `json:"invoice_line_lesson_date" gorm:"column:invoice_line_lesson_date;type:date;not null"`

	InvoiceLineDurationHours float64 `json:"invoice_line_duration_hours" gorm:"column:invoice_line_duration_hours;type:numeric;not null"`
	InvoiceLineSubject       string  `json:"invoice_line_subject"        gorm:"column:invoice_line_subject;type:text;not null"`
	InvoiceLineTutorName     string  `json:"invoice_line_tutor_name"     gorm:"column:invoice_line_tutor_name;type:text;not null"`
	InvoiceLineStatus        string  `json:"invoice_line_status"         gorm:"column:invoice_line_status;type:varchar(30);not null"`

	// placeholder until the pricing step fills it
	InvoiceLineUnitPrice float64 `json:"invoice_line_unit_price" gorm:"column:invoice_line_unit_price;type:numeric;not null;default:0"`
}

func (InvoiceLine) TableName() string { return "invoice_lines" }

/* =========================
   Scopes
   ========================= */

func ScopeDraftsForWeek(weekStart string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("invoice_draft_week_start = ?", weekStart)
	}
}
