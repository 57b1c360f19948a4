// file: internals/features/billing/exports/service/matching_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xero "tutorku_backend/internals/features/accounting/xero/service"
	model "tutorku_backend/internals/features/billing/exports/model"
	invoiceModel "tutorku_backend/internals/features/billing/invoices/model"
	lessonModel "tutorku_backend/internals/features/lessons/lessons/model"
	tutorModel "tutorku_backend/internals/features/lessons/tutors/model"
)

func TestMatchContactByEmail(t *testing.T) {
	contacts := []xero.Contact{
		{ContactID: "c-1", Name: "Anita Brown", EmailAddress: "Anita.Brown@Example.com"},
		{ContactID: "c-2", Name: "Derek Patel", EmailAddress: "derek.patel@example.com"},
	}

	got := MatchContactByEmail(contacts, "anita.brown@example.com")
	require.NotNil(t, got)
	assert.Equal(t, "c-1", got.ContactID)

	// surrounding whitespace tolerated on both sides
	got = MatchContactByEmail(contacts, "  DEREK.PATEL@example.com ")
	require.NotNil(t, got)
	assert.Equal(t, "c-2", got.ContactID)

	assert.Nil(t, MatchContactByEmail(contacts, "unknown@example.com"))
	assert.Nil(t, MatchContactByEmail(contacts, ""))
	assert.Nil(t, MatchContactByEmail(nil, "anita.brown@example.com"))
}

func TestMatchEmployeeByEmail(t *testing.T) {
	employees := []xero.Employee{
		{EmployeeID: "e-1", Email: "sarah.nguyen@example.com"},
		{EmployeeID: "e-2", Email: "James.Okafor@example.com"},
	}

	got := MatchEmployeeByEmail(employees, "JAMES.okafor@example.com")
	require.NotNil(t, got)
	assert.Equal(t, "e-2", got.EmployeeID)

	assert.Nil(t, MatchEmployeeByEmail(employees, "mei.lin@example.com"))
	assert.Nil(t, MatchEmployeeByEmail(employees, ""))
}

func TestBuildRemoteInvoice(t *testing.T) {
	loc, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)

	draft := &invoiceModel.InvoiceDraft{
		InvoiceDraftID:         uuid.New(),
		InvoiceDraftWeekStart:  "2025-01-06",
		InvoiceDraftFamilyName: "Brown",
	}
	lines := []invoiceModel.InvoiceLine{
		{
			InvoiceLineStudentName:   "Liam Brown",
			InvoiceLineSubject:       "Maths",
			InvoiceLineLessonDate:    "2025-01-06",
			InvoiceLineDurationHours: 1.5,
			InvoiceLineTutorName:     "Sarah Nguyen",
			InvoiceLineUnitPrice:     65,
		},
		{
			InvoiceLineStudentName:   "Olivia Brown",
			InvoiceLineSubject:       "English",
			InvoiceLineLessonDate:    "2025-01-08",
			InvoiceLineDurationHours: 1,
			InvoiceLineTutorName:     "Mei Lin",
		},
	}

	inv, err := BuildRemoteInvoice(draft, lines, "2025-01-12", "c-1", loc)
	require.NoError(t, err)

	assert.Equal(t, "ACCREC", inv.Type)
	assert.Equal(t, "DRAFT", inv.Status)
	assert.Equal(t, "c-1", inv.Contact.ContactID)
	assert.Equal(t, "2025-01-12", inv.Date)
	assert.Equal(t, "2025-01-26", inv.DueDate) // week end + 14 days
	assert.Equal(t, "Tutoring week 2025-01-06", inv.Reference)

	require.Len(t, inv.LineItems, 2)
	assert.Equal(t, "Liam Brown - Maths (2025-01-06, 1.50h, Sarah Nguyen)", inv.LineItems[0].Description)
	assert.InDelta(t, 1.5, inv.LineItems[0].Quantity, 1e-9)
	assert.InDelta(t, 65, inv.LineItems[0].UnitAmount, 1e-9)
	assert.Equal(t, "Olivia Brown - English (2025-01-08, 1.00h, Mei Lin)", inv.LineItems[1].Description)
}

func TestBuildRemoteInvoice_BadWeekEnd(t *testing.T) {
	loc := time.UTC
	_, err := BuildRemoteInvoice(&invoiceModel.InvoiceDraft{}, nil, "12/01/2025", "c-1", loc)
	assert.Error(t, err)
}

func TestBuildTimesheet(t *testing.T) {
	line := &model.PayrollLine{
		PayrollLineWeekStart:  "2025-01-06",
		PayrollLineTotalHours: 7.5,
	}
	emp := &xero.Employee{
		EmployeeID:             "e-1",
		OrdinaryEarningsRateID: "rate-1",
	}

	ts := BuildTimesheet(line, emp, "2025-01-12")
	assert.Equal(t, "e-1", ts.EmployeeID)
	assert.Equal(t, "2025-01-06", ts.StartDate)
	assert.Equal(t, "2025-01-12", ts.EndDate)
	assert.Equal(t, "DRAFT", ts.Status)
	require.Len(t, ts.TimesheetLines, 1)
	assert.Equal(t, "rate-1", ts.TimesheetLines[0].EarningsRateID)
	assert.Equal(t, []float64{7.5}, ts.TimesheetLines[0].NumberOfUnits)
}

func TestBuildPayrollLines(t *testing.T) {
	tutorA := tutorModel.Tutor{TutorID: uuid.New(), TutorName: "Sarah Nguyen", TutorEmail: "sarah.nguyen@example.com"}
	tutorB := tutorModel.Tutor{TutorID: uuid.New(), TutorName: "James Okafor", TutorEmail: "james.okafor@example.com"}

	mon := time.Date(2025, 1, 6, 5, 0, 0, 0, time.UTC)
	lesson := func(tutor tutorModel.Tutor, start time.Time, minutes int) lessonModel.Lesson {
		return lessonModel.Lesson{
			LessonID:        uuid.New(),
			LessonStart:     start,
			LessonEnd:       start.Add(time.Duration(minutes) * time.Minute),
			LessonTutorID:   tutor.TutorID,
			LessonTutorName: tutor.TutorName,
		}
	}

	lessons := []lessonModel.Lesson{
		lesson(tutorA, mon, 60),
		lesson(tutorB, mon.Add(2*time.Hour), 90),
		lesson(tutorA, mon.AddDate(0, 0, 2), 120),
	}

	lines := BuildPayrollLines("2025-01-06", lessons, []tutorModel.Tutor{tutorA, tutorB})
	require.Len(t, lines, 2)

	byTutor := map[uuid.UUID]model.PayrollLine{}
	for _, l := range lines {
		byTutor[l.PayrollLineTutorID] = l
	}

	a := byTutor[tutorA.TutorID]
	assert.InDelta(t, 3.0, a.PayrollLineTotalHours, 1e-9)
	assert.Equal(t, "sarah.nguyen@example.com", a.PayrollLineTutorEmail)
	assert.Equal(t, "2025-01-06", a.PayrollLineWeekStart)

	b := byTutor[tutorB.TutorID]
	assert.InDelta(t, 1.5, b.PayrollLineTotalHours, 1e-9)

	// sorted by tutor id for deterministic export order
	assert.True(t, lines[0].PayrollLineTutorID.String() < lines[1].PayrollLineTutorID.String())
}

func TestBuildPayrollLines_TutorMissingFromDirectory(t *testing.T) {
	unknownTutor := uuid.New()
	mon := time.Date(2025, 1, 6, 5, 0, 0, 0, time.UTC)
	lessons := []lessonModel.Lesson{
		{
			LessonID:        uuid.New(),
			LessonStart:     mon,
			LessonEnd:       mon.Add(time.Hour),
			LessonTutorID:   unknownTutor,
			LessonTutorName: "Ghost Tutor",
		},
	}

	// the line is still produced, with an empty email the export pass will
	// fail to resolve and record
	lines := BuildPayrollLines("2025-01-06", lessons, nil)
	require.Len(t, lines, 1)
	assert.Equal(t, "Ghost Tutor", lines[0].PayrollLineTutorName)
	assert.Empty(t, lines[0].PayrollLineTutorEmail)
	assert.InDelta(t, 1.0, lines[0].PayrollLineTotalHours, 1e-9)
}

func TestWeekEndOf(t *testing.T) {
	got, err := weekEndOf("2025-01-06", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-12", got)

	_, err = weekEndOf("bad", time.UTC)
	assert.Error(t, err)
}
