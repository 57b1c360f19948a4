// file: internals/features/billing/exports/model/export_record_model_test.go
package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExportRecord(t *testing.T) {
	rec, err := NewExportRecord(ExportTypeInvoices, "2025-01-06",
		[]string{"Brown: invoice inv-1", "Patel: invoice inv-2"},
		[]string{"counterpart not found for email: ghost@example.com"})
	require.NoError(t, err)

	assert.Equal(t, ExportTypeInvoices, rec.ExportRecordType)
	assert.Equal(t, "2025-01-06", rec.ExportRecordWeekStart)
	assert.Equal(t, 2, rec.ExportRecordSuccessCount)
	assert.Equal(t, 1, rec.ExportRecordErrorCount)

	var results, errs []string
	require.NoError(t, json.Unmarshal(rec.ExportRecordResults, &results))
	require.NoError(t, json.Unmarshal(rec.ExportRecordErrors, &errs))
	assert.Len(t, results, 2)
	assert.Equal(t, "counterpart not found for email: ghost@example.com", errs[0])
}

func TestNewExportRecord_EmptySlices(t *testing.T) {
	rec, err := NewExportRecord(ExportTypePayroll, "2025-01-06", nil, nil)
	require.NoError(t, err)
	assert.Zero(t, rec.ExportRecordSuccessCount)
	assert.Zero(t, rec.ExportRecordErrorCount)

	var results []string
	require.NoError(t, json.Unmarshal(rec.ExportRecordResults, &results))
	assert.Empty(t, results)
}
