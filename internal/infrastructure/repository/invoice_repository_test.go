package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/rgbilling/gst-billing/internal/domain/entity"
	domainRepo "github.com/rgbilling/gst-billing/internal/domain/repository"
	"github.com/rgbilling/gst-billing/internal/infrastructure/database"
	"github.com/rgbilling/gst-billing/pkg/gst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewInMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

var errItemsRejected = errors.New("item insert rejected")

// rejectItemInserts makes every insert into invoice_items fail once *enabled
// is set.
func rejectItemInserts(t *testing.T, db *gorm.DB) *bool {
	t.Helper()
	enabled := new(bool)
	err := db.Callback().Create().Before("gorm:create").Register("test:reject_items", func(tx *gorm.DB) {
		if *enabled && tx.Statement.Table == (entity.InvoiceItem{}).TableName() {
			tx.AddError(errItemsRejected)
		}
	})
	require.NoError(t, err)
	return enabled
}

func sampleInvoice(no string, items ...string) *entity.Invoice {
	inv := &entity.Invoice{
		InvoiceNo:       no,
		Date:            "15-10-2026",
		CustomerName:    "Patna Cold Storage",
		CustomerAddress: "Boring Road, Patna",
		CustomerGSTIN:   "10ABCDE1234F1Z5",
		StateCode:       "10",
		WorkOrderNo:     "WO-77",
		TaxableAmount:   1000,
		CGSTRate:        9,
		SGSTRate:        9,
		IGSTRate:        28,
		CGSTAmount:      90,
		SGSTAmount:      90,
		TotalGST:        180,
		GrandTotal:      1180,
		AmountInWords:   "One thousand one hundred eighty rupees only",
		Note1:           "Goods once sold will not be taken back.",
		Note2:           "Subject to Patna jurisdiction.",
		BankDetails:     "Bank of India",
	}
	for _, d := range items {
		inv.Items = append(inv.Items, entity.InvoiceItem{
			Description: d,
			HSN:         "998719",
			Qty:         1,
			Rate:        100,
			Amount:      100,
			Unit:        "Nos.",
			TaxType:     gst.TaxTypeDomesticSplit,
		})
	}
	return inv
}

func TestInvoiceRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(newTestDB(t))

	inv := sampleInvoice("RG-1", "first", "second", "third")
	inv.Items[1].TaxType = gst.TaxTypeInterState
	inv.Items[2].Unit = "Hrs."
	require.NoError(t, repo.Create(ctx, inv))
	require.NotZero(t, inv.ID)

	got, err := repo.GetWithItems(ctx, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "RG-1", got.InvoiceNo)
	assert.Equal(t, "15-10-2026", got.Date)
	assert.Equal(t, "Patna Cold Storage", got.CustomerName)
	assert.Equal(t, "10ABCDE1234F1Z5", got.CustomerGSTIN)
	assert.Equal(t, "WO-77", got.WorkOrderNo)
	assert.Equal(t, 1180.0, got.GrandTotal)
	assert.Equal(t, "Subject to Patna jurisdiction.", got.Note2)

	require.Len(t, got.Items, 3)
	for i, want := range []string{"first", "second", "third"} {
		assert.Equal(t, i+1, got.Items[i].SlNo)
		assert.Equal(t, want, got.Items[i].Description)
	}
	assert.Equal(t, gst.TaxTypeInterState, got.Items[1].TaxType)
	assert.Equal(t, "Hrs.", got.Items[2].Unit)
}

func TestInvoiceRepositoryGetMissing(t *testing.T) {
	repo := NewInvoiceRepository(newTestDB(t))
	got, err := repo.GetWithItems(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInvoiceRepositoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(newTestDB(t))

	for _, no := range []string{"RG-1", "RG-2", "rg-3"} {
		require.NoError(t, repo.Create(ctx, sampleInvoice(no, "x")))
	}
	other := sampleInvoice("CASH-9")
	other.Date = "01-04-2026"
	require.NoError(t, repo.Create(ctx, other))

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "CASH-9", all[0].InvoiceNo)
	assert.Equal(t, "RG-1", all[3].InvoiceNo)
	assert.Equal(t, 1180.0, all[0].GrandTotal)
	assert.Equal(t, "Patna Cold Storage", all[0].CustomerName)

	byNo, err := repo.List(ctx, &domainRepo.InvoiceFilterParams{InvoiceNo: "RG-"})
	require.NoError(t, err)
	require.Len(t, byNo, 3)
	assert.Equal(t, "rg-3", byNo[0].InvoiceNo)

	byDate, err := repo.List(ctx, &domainRepo.InvoiceFilterParams{Date: "01-04-2026"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "CASH-9", byDate[0].InvoiceNo)
}

func TestInvoiceRepositoryReplaceShrinksItems(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(newTestDB(t))

	inv := sampleInvoice("RG-5", "a", "b", "c", "d")
	require.NoError(t, repo.Create(ctx, inv))

	update := sampleInvoice("RG-5A", "only")
	update.ID = inv.ID
	update.CustomerName = ""
	found, err := repo.Replace(ctx, update)
	require.NoError(t, err)
	assert.True(t, found)

	count, err := repo.CountItems(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetWithItems(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "RG-5A", got.InvoiceNo)
	assert.Empty(t, got.CustomerName)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "only", got.Items[0].Description)
	assert.Equal(t, 1, got.Items[0].SlNo)
}

func TestInvoiceRepositoryReplaceMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(newTestDB(t))

	update := sampleInvoice("RG-404", "ghost")
	update.ID = 404
	found, err := repo.Replace(ctx, update)
	require.NoError(t, err)
	assert.False(t, found)

	count, err := repo.CountItems(ctx, 404)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestInvoiceRepositoryCreateRollsBackOnItemFailure(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)
	*rejectItemInserts(t, db) = true

	inv := sampleInvoice("RG-8", "a", "b")
	err := repo.Create(ctx, inv)
	require.ErrorIs(t, err, errItemsRejected)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, all)

	var headers int64
	require.NoError(t, db.Model(&entity.Invoice{}).Count(&headers).Error)
	assert.Zero(t, headers)
}

func TestInvoiceRepositoryReplaceKeepsOldRowsOnItemFailure(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)
	reject := rejectItemInserts(t, db)

	inv := sampleInvoice("RG-9", "a", "b", "c")
	require.NoError(t, repo.Create(ctx, inv))

	*reject = true
	update := sampleInvoice("RG-9A", "replacement")
	update.ID = inv.ID
	update.CustomerName = "Someone Else"
	found, err := repo.Replace(ctx, update)
	require.ErrorIs(t, err, errItemsRejected)
	assert.False(t, found)

	got, err := repo.GetWithItems(ctx, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "RG-9", got.InvoiceNo)
	assert.Equal(t, "Patna Cold Storage", got.CustomerName)
	require.Len(t, got.Items, 3)
	for i, want := range []string{"a", "b", "c"} {
		assert.Equal(t, want, got.Items[i].Description)
		assert.Equal(t, i+1, got.Items[i].SlNo)
	}
}

func TestInvoiceRepositoryDeleteCascades(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(newTestDB(t))

	keep := sampleInvoice("RG-keep", "k1")
	require.NoError(t, repo.Create(ctx, keep))
	inv := sampleInvoice("RG-6", "a", "b")
	require.NoError(t, repo.Create(ctx, inv))

	deleted, err := repo.Delete(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	count, err := repo.CountItems(ctx, inv.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	got, err := repo.GetWithItems(ctx, inv.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	kept, err := repo.CountItems(ctx, keep.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), kept)

	deleted, err = repo.Delete(ctx, inv.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestIssuerProfileRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewIssuerProfileRepository(newTestDB(t))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Save(ctx, &entity.IssuerProfile{Name: "Raju Generator", Signature: []byte{1, 2}}))
	require.NoError(t, repo.Save(ctx, &entity.IssuerProfile{Name: "Raju Generators", Signature: []byte{3}}))

	got, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Raju Generators", got.Name)
	assert.Equal(t, []byte{3}, got.Signature)
}
