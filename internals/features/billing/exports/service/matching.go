// file: internals/features/billing/exports/service/matching.go
package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	xero "tutorku_backend/internals/features/accounting/xero/service"
	invoiceModel "tutorku_backend/internals/features/billing/invoices/model"
	model "tutorku_backend/internals/features/billing/exports/model"
	lessonModel "tutorku_backend/internals/features/lessons/lessons/model"
	tutorModel "tutorku_backend/internals/features/lessons/tutors/model"
)

// invoices fall due two weeks after the billed week ends
const invoiceDueDays = 14

// MatchContactByEmail resolves the remote counterpart by case-insensitive
// exact email match; first match wins.
func MatchContactByEmail(contacts []xero.Contact, email string) *xero.Contact {
	want := strings.ToLower(strings.TrimSpace(email))
	if want == "" {
		return nil
	}
	for i := range contacts {
		if strings.ToLower(strings.TrimSpace(contacts[i].EmailAddress)) == want {
			return &contacts[i]
		}
	}
	return nil
}

// MatchEmployeeByEmail resolves the payroll employee the same way.
func MatchEmployeeByEmail(employees []xero.Employee, email string) *xero.Employee {
	want := strings.ToLower(strings.TrimSpace(email))
	if want == "" {
		return nil
	}
	for i := range employees {
		if strings.ToLower(strings.TrimSpace(employees[i].Email)) == want {
			return &employees[i]
		}
	}
	return nil
}

// BuildRemoteInvoice turns one local draft into the remote financial
// document: one line per line item, due date = week end + 14 days.
func BuildRemoteInvoice(draft *invoiceModel.InvoiceDraft, lines []invoiceModel.InvoiceLine, weekEnd string, contactID string, loc *time.Location) (xero.Invoice, error) {
	endDay, err := time.ParseInLocation("2006-01-02", weekEnd, loc)
	if err != nil {
		return xero.Invoice{}, fmt.Errorf("weekEnd: %w", err)
	}
	dueDate := endDay.AddDate(0, 0, invoiceDueDays)

	items := make([]xero.InvoiceLineItem, 0, len(lines))
	for _, line := range lines {
		desc := fmt.Sprintf("%s - %s (%s, %.2fh, %s)",
			line.InvoiceLineStudentName,
			line.InvoiceLineSubject,
			line.InvoiceLineLessonDate,
			line.InvoiceLineDurationHours,
			line.InvoiceLineTutorName,
		)
		items = append(items, xero.InvoiceLineItem{
			Description: desc,
			Quantity:    line.InvoiceLineDurationHours,
			UnitAmount:  line.InvoiceLineUnitPrice,
		})
	}

	return xero.Invoice{
		Type:      "ACCREC",
		Contact:   xero.Contact{ContactID: contactID},
		Date:      weekEnd,
		DueDate:   dueDate.Format("2006-01-02"),
		Reference: "Tutoring week " + draft.InvoiceDraftWeekStart,
		Status:    "DRAFT",
		LineItems: items,
	}, nil
}

// BuildTimesheet aggregates one payroll line into a timesheet against the
// employee's ordinary earnings rate.
func BuildTimesheet(line *model.PayrollLine, emp *xero.Employee, weekEnd string) xero.Timesheet {
	return xero.Timesheet{
		EmployeeID: emp.EmployeeID,
		StartDate:  line.PayrollLineWeekStart,
		EndDate:    weekEnd,
		Status:     "DRAFT",
		TimesheetLines: []xero.TimesheetLine{
			{
				EarningsRateID: emp.OrdinaryEarningsRateID,
				NumberOfUnits:  []float64{line.PayrollLineTotalHours},
			},
		},
	}
}

// BuildPayrollLines aggregates the week's delivered lesson hours per tutor.
// Tutor emails come from the directory; a tutor missing from it still gets
// a line (the export pass records the resolution failure per line).
func BuildPayrollLines(weekStart string, lessons []lessonModel.Lesson, tutors []tutorModel.Tutor) []model.PayrollLine {
	emailByTutor := map[uuid.UUID]string{}
	for _, t := range tutors {
		emailByTutor[t.TutorID] = t.TutorEmail
	}

	type agg struct {
		name  string
		hours float64
	}
	byTutor := map[uuid.UUID]*agg{}
	for i := range lessons {
		l := &lessons[i]
		a, ok := byTutor[l.LessonTutorID]
		if !ok {
			a = &agg{name: l.LessonTutorName}
			byTutor[l.LessonTutorID] = a
		}
		a.hours += l.DurationHours()
	}

	ids := make([]uuid.UUID, 0, len(byTutor))
	for id := range byTutor {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	out := make([]model.PayrollLine, 0, len(ids))
	for _, id := range ids {
		a := byTutor[id]
		out = append(out, model.PayrollLine{
			PayrollLineID:         uuid.New(),
			PayrollLineWeekStart:  weekStart,
			PayrollLineTutorID:    id,
			PayrollLineTutorName:  a.name,
			PayrollLineTutorEmail: emailByTutor[id],
			PayrollLineTotalHours: a.hours,
		})
	}
	return out
}
