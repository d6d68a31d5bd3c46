package ingest

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vendhub/vendhub-backend/pkg/db"
	"github.com/vendhub/vendhub-backend/pkg/db/models"
	"github.com/vendhub/vendhub-backend/pkg/enums"
	pkgerrors "github.com/vendhub/vendhub-backend/pkg/errors"
	"github.com/vendhub/vendhub-backend/pkg/logger"
	"github.com/vendhub/vendhub-backend/pkg/metrics"
)

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "ingest-test", Output: io.Discard})
	svc, err := NewService(db.NewFromConn(conn), NewRepository(conn), logg, nil)
	require.NoError(t, err)
	return svc
}

func TestProcessBatchPartialFailure(t *testing.T) {
	t.Parallel()

	conn := newIngestTestDB(t)
	svc := newTestService(t, conn)

	var sb strings.Builder
	sb.WriteString("Location_ID,Product_Name,Scancode,Trans_Date,Price,Total_Amount\n")
	for i := 1; i <= 10; i++ {
		date := "01/15/2024"
		if i == 5 {
			date = "garbage"
		}
		fmt.Fprintf(&sb, "LOC%03d,Celsius Arctic,88939%04d,%s,$2.99,$2.99\n", i, i, date)
	}

	result, err := svc.ProcessBatch(context.Background(), BatchInput{
		RawCSV:     sb.String(),
		DataSource: enums.DataSourceVendorA,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, result.Total)
	assert.Equal(t, 9, result.Processed)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, `Row 5: invalid date "garbage"`, result.Errors[0])

	var sales int64
	require.NoError(t, conn.Model(&models.SalesTransaction{}).Count(&sales).Error)
	assert.Equal(t, int64(9), sales)
}

func TestProcessBatchLocationPrefixReuse(t *testing.T) {
	t.Parallel()

	conn := newIngestTestDB(t)
	svc := newTestService(t, conn)

	raw := "Site_Code,Item_Description,UPC,Sale_Date,Unit_Price,Final_Total\n" +
		"LOC001,Celsius Arctic,889392014,2024-01-15,2.99,2.99\n" +
		"2.0_LOC001,Celsius Arctic,889392014,2024-01-16,2.99,2.99\n"

	result, err := svc.ProcessBatch(context.Background(), BatchInput{
		RawCSV:     raw,
		DataSource: enums.DataSourceVendorB,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 0, result.Failed)

	var locations int64
	require.NoError(t, conn.Model(&models.Location{}).Count(&locations).Error)
	assert.Equal(t, int64(1), locations, "both spellings must resolve to one site")

	// Same UPC on both rows must resolve to one product.
	var products int64
	require.NoError(t, conn.Model(&models.Product{}).Count(&products).Error)
	assert.Equal(t, int64(1), products)

	// Two sales against one inventory row seeded at the default level.
	var level models.InventoryLevel
	require.NoError(t, conn.First(&level).Error)
	assert.Equal(t, defaultSeedStock-2, level.CurrentStock)
}

func TestProcessBatchClampsStockAtZero(t *testing.T) {
	t.Parallel()

	conn := newIngestTestDB(t)
	svc := newTestService(t, conn)

	var sb strings.Builder
	sb.WriteString("Location_ID,Product_Name,Scancode,Trans_Date,Price,Total_Amount\n")
	for i := 0; i < 12; i++ {
		sb.WriteString("LOC001,Coke Zero,049000042,01/15/2024,1.50,1.50\n")
	}

	result, err := svc.ProcessBatch(context.Background(), BatchInput{
		RawCSV:     sb.String(),
		DataSource: enums.DataSourceVendorA,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, result.Processed)

	// Every sale is recorded even after the stock floor is reached.
	var sales int64
	require.NoError(t, conn.Model(&models.SalesTransaction{}).Count(&sales).Error)
	assert.Equal(t, int64(12), sales)

	var level models.InventoryLevel
	require.NoError(t, conn.First(&level).Error)
	assert.Equal(t, 0, level.CurrentStock)
}

func TestProcessBatchRowFailureRollsBack(t *testing.T) {
	t.Parallel()

	conn := newIngestTestDB(t)
	svc := newTestService(t, conn)

	// The dash date passes normalization untouched and only fails when the
	// recorder parses it, after the location and product inserts. The row
	// transaction must roll all of it back.
	raw := "Site_Code,Item_Description,UPC,Sale_Date,Unit_Price,Final_Total\n" +
		"LOC001,Celsius Arctic,889392014,not-a-date,2.99,2.99\n"

	result, err := svc.ProcessBatch(context.Background(), BatchInput{
		RawCSV:     raw,
		DataSource: enums.DataSourceVendorB,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, `Row 1: invalid date "not-a-date"`, result.Errors[0])

	for _, count := range []struct {
		name  string
		model any
	}{
		{name: "locations", model: &models.Location{}},
		{name: "products", model: &models.Product{}},
		{name: "sales", model: &models.SalesTransaction{}},
		{name: "inventory", model: &models.InventoryLevel{}},
	} {
		var n int64
		require.NoError(t, conn.Model(count.model).Count(&n).Error)
		assert.Zero(t, n, "%s must be rolled back", count.name)
	}
}

func TestProcessBatchMissingFieldsReportedTogether(t *testing.T) {
	t.Parallel()

	conn := newIngestTestDB(t)
	svc := newTestService(t, conn)

	raw := "Location_ID,Product_Name,Scancode,Trans_Date,Price,Total_Amount\n" +
		"LOC001,,,01/15/2024,2.99,2.99\n"

	result, err := svc.ProcessBatch(context.Background(), BatchInput{
		RawCSV:     raw,
		DataSource: enums.DataSourceVendorA,
	})
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Row 1:")
	assert.Contains(t, result.Errors[0], `"Product_Name"`)
	assert.Contains(t, result.Errors[0], `"Scancode"`)
}

func TestProcessBatchMalformedFile(t *testing.T) {
	t.Parallel()

	conn := newIngestTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.ProcessBatch(context.Background(), BatchInput{
		RawCSV:     "Location_ID,Product_Name,Scancode,Trans_Date,Price,Total_Amount\n",
		DataSource: enums.DataSourceVendorA,
	})
	require.Error(t, err)
	assert.True(t, IsMalformedInput(err))
}

func TestProcessBatchUnknownSource(t *testing.T) {
	t.Parallel()

	conn := newIngestTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.ProcessBatch(context.Background(), BatchInput{
		RawCSV:     "a,b\n1,2\n",
		DataSource: enums.DataSource("vendor_z"),
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestProcessBatchRecordsMetrics(t *testing.T) {
	t.Parallel()

	conn := newIngestTestDB(t)
	registry := prometheus.NewRegistry()
	logg := logger.New(logger.Options{ServiceName: "ingest-test", Output: io.Discard})
	svc, err := NewService(db.NewFromConn(conn), NewRepository(conn), logg, metrics.NewIngestMetrics(registry))
	require.NoError(t, err)

	raw := "Site_Code,Item_Description,UPC,Sale_Date,Unit_Price,Final_Total\n" +
		"LOC001,Celsius Arctic,889392014,2024-01-15,2.99,2.99\n"
	_, err = svc.ProcessBatch(context.Background(), BatchInput{RawCSV: raw, DataSource: enums.DataSourceVendorB})
	require.NoError(t, err)

	families, err := registry.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, family := range families {
		names[family.GetName()] = true
	}
	assert.True(t, names["import_batches_total"])
	assert.True(t, names["import_rows_processed_total"])
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	t.Parallel()

	conn := newIngestTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "ingest-test", Output: io.Discard})

	_, err := NewService(nil, NewRepository(conn), logg, nil)
	require.Error(t, err)
	_, err = NewService(db.NewFromConn(conn), nil, logg, nil)
	require.Error(t, err)
	_, err = NewService(db.NewFromConn(conn), NewRepository(conn), nil, nil)
	require.Error(t, err)
}
