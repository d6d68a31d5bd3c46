package main

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vendhub/vendhub-backend/internal/imports"
	"github.com/vendhub/vendhub-backend/internal/ingest"
	"github.com/vendhub/vendhub-backend/pkg/db/models"
	"github.com/vendhub/vendhub-backend/pkg/enums"
)

func TestPrintReceipt(t *testing.T) {
	id := uuid.MustParse("3f1d1ad1-9d62-4c86-a0a6-8f8a4d6b7e21")
	result := &imports.RunResult{
		Import: &models.DataImport{ID: id, Status: enums.ImportStatusCompleted},
		Batch: &ingest.BatchResult{
			Total:     4,
			Processed: 3,
			Failed:    1,
			Errors:    []string{`row 3: unknown product code "XX-9"`},
		},
	}

	var out strings.Builder
	printReceipt(&out, result)

	text := out.String()
	require.Contains(t, text, "Import:    3f1d1ad1-9d62-4c86-a0a6-8f8a4d6b7e21")
	require.Contains(t, text, "Status:    completed")
	require.Contains(t, text, "Total:     4")
	require.Contains(t, text, "Processed: 3")
	require.Contains(t, text, "Failed:    1")
	require.Contains(t, text, `  - row 3: unknown product code "XX-9"`)
}

func TestPrintReceiptOmitsEmptyErrors(t *testing.T) {
	result := &imports.RunResult{
		Import: &models.DataImport{ID: uuid.New(), Status: enums.ImportStatusCompleted},
		Batch:  &ingest.BatchResult{Total: 2, Processed: 2},
	}

	var out strings.Builder
	printReceipt(&out, result)

	require.NotContains(t, out.String(), "Errors:")
}
