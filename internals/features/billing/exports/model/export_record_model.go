// file: internals/features/billing/exports/model/export_record_model.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ExportTypeInvoices = "invoices"
	ExportTypePayroll  = "payroll"
)

/* =========================
   Model: export_records
   ========================= */

// ExportRecord is the immutable audit entry of one reconciliation pass.
// Insert-only; never updated.
type ExportRecord struct {
	ExportRecordID uuid.UUID `json:"export_record_id" gorm:"column:export_record_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	ExportRecordType      string `json:"export_record_type"       gorm:"column:export_record_type;type:varchar(15);not null"`
	ExportRecordWeekStart string `json:"export_record_week_start" gorm:"column:export_record_week_start;type:date;not null;index"`

	ExportRecordSuccessCount int `json:"export_record_success_count" gorm:"column:export_record_success_count;type:int;not null"`
	ExportRecordErrorCount   int `json:"export_record_error_count"   gorm:"column:export_record_error_count;type:int;not null"`

	ExportRecordResults datatypes.JSON `json:"export_record_results" gorm:"column:export_record_results;type:jsonb"`
	ExportRecordErrors  datatypes.JSON `json:"export_record_errors"  gorm:"column:export_record_errors;type:jsonb"`

	ExportRecordCreatedAt time.Time `json:"export_record_created_at" gorm:"column:export_record_created_at;type:timestamptz;not null;default:now()"`
}

func (ExportRecord) TableName() string { return "export_records" }

func NewExportRecord(exportType, weekStart string, results, errorDetails []string) (*ExportRecord, error) {
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return nil, err
	}
	errorsJSON, err := json.Marshal(errorDetails)
	if err != nil {
		return nil, err
	}
	return &ExportRecord{
		ExportRecordType:         exportType,
		ExportRecordWeekStart:    weekStart,
		ExportRecordSuccessCount: len(results),
		ExportRecordErrorCount:   len(errorDetails),
		ExportRecordResults:      datatypes.JSON(resultsJSON),
		ExportRecordErrors:       datatypes.JSON(errorsJSON),
	}, nil
}

/* =========================
   Model: payroll_lines
   ========================= */

// PayrollLine is one tutor's aggregated hours for a week, the local entity
// a timesheet export is reconciled against.
type PayrollLine struct {
	PayrollLineID uuid.UUID `json:"payroll_line_id" gorm:"column:payroll_line_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	PayrollLineWeekStart string `json:"payroll_line_week_start" gorm:"column:payroll_line_week_start;type:date;not null;index:idx_payroll_week_tutor,unique"`

	PayrollLineTutorID    uuid.UUID `json:"payroll_line_tutor_id"    gorm:"column:payroll_line_tutor_id;type:uuid;not null;index:idx_payroll_week_tutor,unique"`
	PayrollLineTutorName  string    `json:"payroll_line_tutor_name"  gorm:"column:payroll_line_tutor_name;type:text;not null"`
	PayrollLineTutorEmail string    `json:"payroll_line_tutor_email" gorm:"column:payroll_line_tutor_email;type:text"`

	PayrollLineTotalHours float64 `json:"payroll_line_total_hours" gorm:"column:payroll_line_total_hours;type:numeric;not null"`

	PayrollLineExported        bool    `json:"payroll_line_exported"                    gorm:"column:payroll_line_exported;not null;default:false"`
	PayrollLineXeroTimesheetID *string `json:"payroll_line_xero_timesheet_id,omitempty" gorm:"column:payroll_line_xero_timesheet_id;type:text"`

	PayrollLineCreatedAt time.Time `json:"payroll_line_created_at" gorm:"column:payroll_line_created_at;type:timestamptz;not null;default:now()"`
	PayrollLineUpdatedAt time.Time `json:"payroll_line_updated_at" gorm:"column:payroll_line_updated_at;type:timestamptz;not null;default:now()"`
}

func (PayrollLine) TableName() string { return "payroll_lines" }
