package services

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"scrapyard_backend/internal/models"
	"scrapyard_backend/internal/repositories"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// setupIntegrationDB connects to the test database and applies the schema.
// Each test run uses a fresh tenant ID so runs do not interfere.
func setupIntegrationDB(t *testing.T) *sql.DB {
	t.Helper()
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires postgres)")
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getenvDefault("DB_HOST", "localhost"),
		getenvDefault("DB_PORT", "5432"),
		getenvDefault("DB_USER", "scrapyard_user"),
		getenvDefault("DB_PASSWORD", "scrapyard_password"),
		getenvDefault("DB_NAME", "scrapyard_test_db"),
	)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../db_schema.sql")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

func seedTenant(t *testing.T, db *sql.DB) int64 {
	t.Helper()
	var id int64
	name := fmt.Sprintf("test-tenant-%d", time.Now().UnixNano())
	if err := db.QueryRow(`INSERT INTO tenants (name) VALUES ($1) RETURNING id`, name).Scan(&id); err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	return id
}

func seedPartner(t *testing.T, repo repositories.PartnerRepository, db *sql.DB, tenantID int64, name, partnerType string) int64 {
	t.Helper()
	id, err := repo.CreatePartner(db, &models.Partner{TenantID: tenantID, Name: name, Type: partnerType})
	if err != nil {
		t.Fatalf("seed partner %s: %v", name, err)
	}
	return id
}

func seedMaterial(t *testing.T, repo repositories.MaterialRepository, db *sql.DB, tenantID int64, name string) int64 {
	t.Helper()
	id, err := repo.CreateMaterial(db, &models.Material{TenantID: tenantID, ItemName: name, UnitOfMeasure: "kg"})
	if err != nil {
		t.Fatalf("seed material %s: %v", name, err)
	}
	return id
}

func partnerBalance(t *testing.T, repo repositories.PartnerRepository, tenantID, partnerID int64) decimal.Decimal {
	t.Helper()
	partner, err := repo.GetPartnerByID(tenantID, partnerID)
	if err != nil {
		t.Fatalf("get partner %d: %v", partnerID, err)
	}
	return partner.Balance
}

func TestReceivingToSellingWorkflow(t *testing.T) {
	db := setupIntegrationDB(t)
	tenantID := seedTenant(t, db)

	partnerRepo := repositories.NewPartnerRepository(db)
	materialRepo := repositories.NewMaterialRepository(db)
	ullageTypeRepo := repositories.NewUllageTypeRepository(db)
	receivingRepo := repositories.NewReceivingRepository(db)
	inspectionRepo := repositories.NewInspectionRepository(db)
	stockRepo := repositories.NewStockRepository(db)
	sellingRepo := repositories.NewSellingRepository(db)
	moneyRepo := repositories.NewMoneyRepository(db)

	stockService := NewStockService(stockRepo, db)
	receivingService := NewReceivingService(receivingRepo, stockRepo, partnerRepo, moneyRepo, db)
	inspectionService := NewInspectionService(inspectionRepo, receivingRepo, db)
	sellingService := NewSellingService(sellingRepo, materialRepo, stockService, partnerRepo, moneyRepo, db)
	moneyService := NewMoneyService(moneyRepo, partnerRepo, db)

	supplierID := seedPartner(t, partnerRepo, db, tenantID, "Scrap Supplier", models.PartnerTypeSupplier)
	customerID := seedPartner(t, partnerRepo, db, tenantID, "Foundry Customer", models.PartnerTypeCustomer)
	materialID := seedMaterial(t, materialRepo, db, tenantID, "Copper Scrap")

	ullageTypeID, err := ullageTypeRepo.CreateUllageType(db, &models.UllageType{TenantID: tenantID, Name: "Moisture"})
	if err != nil {
		t.Fatalf("seed ullage type: %v", err)
	}

	// Receive 1000 kg at 10 with a logistics cost of 200.
	receiving, err := receivingService.CreateReceiving(tenantID, CreateReceivingRequest{
		PartnerID:     supplierID,
		LogisticsCost: dec("200"),
		Items: []CreateReceivingItemRequest{
			{MaterialID: materialID, GrossWeight: dec("1000"), UnitPrice: dec("10")},
		},
	})
	if err != nil {
		t.Fatalf("CreateReceiving: %v", err)
	}
	if receiving.Status != models.ReceivingStatusPending {
		t.Fatalf("expected pending status, got %s", receiving.Status)
	}
	if !receiving.TotalAmount.Equal(dec("10200")) {
		t.Fatalf("expected provisional total 10200, got %s", receiving.TotalAmount)
	}
	if len(receiving.Items) != 1 {
		t.Fatalf("expected 1 receiving item, got %d", len(receiving.Items))
	}

	// Inspect: 5 + 10 loss on a 100 kg sample is 15 percent ullage.
	_, err = inspectionService.CreateInspection(tenantID, CreateInspectionRequest{
		ReceivingItemID: receiving.Items[0].ID,
		SampleWeight:    dec("100"),
		Items: []CreateInspectionItemRequest{
			{UllageTypeID: ullageTypeID, Weight: dec("5")},
			{UllageTypeID: ullageTypeID, Weight: dec("10")},
		},
	})
	if err != nil {
		t.Fatalf("CreateInspection: %v", err)
	}

	inspected, err := receivingService.GetReceivingByID(tenantID, receiving.ID)
	if err != nil {
		t.Fatalf("reload receiving: %v", err)
	}
	if inspected.Status != models.ReceivingStatusInspected {
		t.Fatalf("expected inspected status after the only item was inspected, got %s", inspected.Status)
	}
	item := inspected.Items[0]
	if !item.NetWeight.Valid || !item.NetWeight.Decimal.Equal(dec("850")) {
		t.Fatalf("expected net weight 850, got %+v", item.NetWeight)
	}
	if !item.EffectiveUnitPrice.Valid || !item.EffectiveUnitPrice.Decimal.Equal(dec("12")) {
		t.Fatalf("expected effective unit price 12, got %+v", item.EffectiveUnitPrice)
	}
	// Effective total: 850 * 12 plus the 200 logistics.
	if !inspected.TotalAmount.Equal(dec("10400")) {
		t.Fatalf("expected recomputed total 10400, got %s", inspected.TotalAmount)
	}

	// Approve: stock, supplier balance and ledger move together.
	if err := receivingService.ApproveReceiving(tenantID, receiving.ID); err != nil {
		t.Fatalf("ApproveReceiving: %v", err)
	}
	available, err := stockService.GetAvailableQuantity(db, tenantID, materialID)
	if err != nil {
		t.Fatalf("GetAvailableQuantity: %v", err)
	}
	if !available.Equal(dec("850")) {
		t.Fatalf("expected 850 in stock after approval, got %s", available)
	}
	if balance := partnerBalance(t, partnerRepo, tenantID, supplierID); !balance.Equal(dec("10400")) {
		t.Fatalf("expected supplier balance 10400, got %s", balance)
	}
	supplierLedger, err := moneyRepo.GetMoneyTransactionsByPartner(tenantID, supplierID)
	if err != nil {
		t.Fatalf("supplier ledger: %v", err)
	}
	if len(supplierLedger) != 1 || supplierLedger[0].Type != models.MoneyTypePayment || !supplierLedger[0].Amount.Equal(dec("10400")) {
		t.Fatalf("expected a single 10400 payment ledger row, got %+v", supplierLedger)
	}

	// Approving twice must fail: the transaction is no longer inspected.
	if err := receivingService.ApproveReceiving(tenantID, receiving.ID); err == nil {
		t.Fatal("expected second approval to fail")
	}

	// Approved is terminal: re-inspecting an item must not re-price it or
	// flip the transaction back to inspected, which would open the door to
	// a second approval depositing stock and posting the balance again.
	_, err = inspectionService.CreateInspection(tenantID, CreateInspectionRequest{
		ReceivingItemID: receiving.Items[0].ID,
		SampleWeight:    dec("100"),
		Items: []CreateInspectionItemRequest{
			{UllageTypeID: ullageTypeID, Weight: dec("50")},
		},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected re-inspection of an approved transaction to be rejected, got %v", err)
	}
	approved, err := receivingService.GetReceivingByID(tenantID, receiving.ID)
	if err != nil {
		t.Fatalf("reload approved receiving: %v", err)
	}
	if approved.Status != models.ReceivingStatusApproved {
		t.Fatalf("expected status to stay approved, got %s", approved.Status)
	}
	if !approved.Items[0].NetWeight.Decimal.Equal(dec("850")) {
		t.Fatalf("expected net weight to stay 850 after rejected re-inspection, got %+v", approved.Items[0].NetWeight)
	}
	if balance := partnerBalance(t, partnerRepo, tenantID, supplierID); !balance.Equal(dec("10400")) {
		t.Fatalf("expected supplier balance to stay 10400, got %s", balance)
	}

	// Sell 100 kg at 20.
	sale, err := sellingService.CreateSelling(tenantID, CreateSellingRequest{
		PartnerID: customerID,
		Items: []CreateSellingItemRequest{
			{MaterialID: materialID, Quantity: dec("100"), UnitPrice: dec("20")},
		},
	})
	if err != nil {
		t.Fatalf("CreateSelling: %v", err)
	}
	if !sale.TotalAmount.Equal(dec("2000")) {
		t.Fatalf("expected sale total 2000, got %s", sale.TotalAmount)
	}
	available, err = stockService.GetAvailableQuantity(db, tenantID, materialID)
	if err != nil {
		t.Fatalf("GetAvailableQuantity: %v", err)
	}
	if !available.Equal(dec("750")) {
		t.Fatalf("expected 750 in stock after sale, got %s", available)
	}
	if balance := partnerBalance(t, partnerRepo, tenantID, customerID); !balance.Equal(dec("2000")) {
		t.Fatalf("expected customer balance 2000, got %s", balance)
	}

	// A manual receipt settles part of the customer's debt: balance drops.
	_, err = moneyService.CreateMoneyTransaction(tenantID, CreateMoneyTransactionRequest{
		PartnerID: customerID,
		Type:      models.MoneyTypeReceipt,
		Amount:    dec("500"),
	})
	if err != nil {
		t.Fatalf("CreateMoneyTransaction: %v", err)
	}
	if balance := partnerBalance(t, partnerRepo, tenantID, customerID); !balance.Equal(dec("1500")) {
		t.Fatalf("expected customer balance 1500 after manual receipt, got %s", balance)
	}

	// Overselling fails before any write: stock and balances stay put.
	_, err = sellingService.CreateSelling(tenantID, CreateSellingRequest{
		PartnerID: customerID,
		Items: []CreateSellingItemRequest{
			{MaterialID: materialID, Quantity: dec("10000"), UnitPrice: dec("20")},
		},
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
	available, err = stockService.GetAvailableQuantity(db, tenantID, materialID)
	if err != nil {
		t.Fatalf("GetAvailableQuantity: %v", err)
	}
	if !available.Equal(dec("750")) {
		t.Fatalf("expected stock unchanged at 750 after failed oversell, got %s", available)
	}
	if balance := partnerBalance(t, partnerRepo, tenantID, customerID); !balance.Equal(dec("1500")) {
		t.Fatalf("expected customer balance unchanged at 1500, got %s", balance)
	}

	// The summary is a pure read: two consecutive calls agree.
	first, err := stockService.GetStockSummary(tenantID)
	if err != nil {
		t.Fatalf("GetStockSummary: %v", err)
	}
	second, err := stockService.GetStockSummary(tenantID)
	if err != nil {
		t.Fatalf("GetStockSummary: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("expected identical summaries, got %d and %d rows", len(first), len(second))
	}
	for i := range first {
		if first[i].MaterialID != second[i].MaterialID || !first[i].TotalQuantity.Equal(second[i].TotalQuantity) {
			t.Fatalf("expected identical summary rows, got %+v and %+v", first[i], second[i])
		}
	}
}

func TestInspectionCompletionAdvancesStatus(t *testing.T) {
	db := setupIntegrationDB(t)
	tenantID := seedTenant(t, db)

	partnerRepo := repositories.NewPartnerRepository(db)
	materialRepo := repositories.NewMaterialRepository(db)
	ullageTypeRepo := repositories.NewUllageTypeRepository(db)
	receivingRepo := repositories.NewReceivingRepository(db)
	inspectionRepo := repositories.NewInspectionRepository(db)
	stockRepo := repositories.NewStockRepository(db)
	moneyRepo := repositories.NewMoneyRepository(db)

	receivingService := NewReceivingService(receivingRepo, stockRepo, partnerRepo, moneyRepo, db)
	inspectionService := NewInspectionService(inspectionRepo, receivingRepo, db)

	supplierID := seedPartner(t, partnerRepo, db, tenantID, "Two Line Supplier", models.PartnerTypeSupplier)
	copperID := seedMaterial(t, materialRepo, db, tenantID, "Copper Scrap")
	brassID := seedMaterial(t, materialRepo, db, tenantID, "Brass Scrap")

	ullageTypeID, err := ullageTypeRepo.CreateUllageType(db, &models.UllageType{TenantID: tenantID, Name: "Dirt"})
	if err != nil {
		t.Fatalf("seed ullage type: %v", err)
	}

	receiving, err := receivingService.CreateReceiving(tenantID, CreateReceivingRequest{
		PartnerID: supplierID,
		Items: []CreateReceivingItemRequest{
			{MaterialID: copperID, GrossWeight: dec("500"), UnitPrice: dec("10")},
			{MaterialID: brassID, GrossWeight: dec("300"), UnitPrice: dec("8")},
		},
	})
	if err != nil {
		t.Fatalf("CreateReceiving: %v", err)
	}
	if len(receiving.Items) != 2 {
		t.Fatalf("expected 2 receiving items, got %d", len(receiving.Items))
	}

	inspect := func(itemID int64) {
		t.Helper()
		_, err := inspectionService.CreateInspection(tenantID, CreateInspectionRequest{
			ReceivingItemID: itemID,
			SampleWeight:    dec("100"),
			Items: []CreateInspectionItemRequest{
				{UllageTypeID: ullageTypeID, Weight: dec("10")},
			},
		})
		if err != nil {
			t.Fatalf("CreateInspection for item %d: %v", itemID, err)
		}
	}

	// One of two items inspected: the transaction stays pending.
	inspect(receiving.Items[0].ID)
	partial, err := receivingService.GetReceivingByID(tenantID, receiving.ID)
	if err != nil {
		t.Fatalf("reload receiving: %v", err)
	}
	if partial.Status != models.ReceivingStatusPending {
		t.Fatalf("expected status pending with one of two items inspected, got %s", partial.Status)
	}

	// The last inspection advances it to inspected.
	inspect(receiving.Items[1].ID)
	complete, err := receivingService.GetReceivingByID(tenantID, receiving.ID)
	if err != nil {
		t.Fatalf("reload receiving: %v", err)
	}
	if complete.Status != models.ReceivingStatusInspected {
		t.Fatalf("expected status inspected with all items inspected, got %s", complete.Status)
	}
}

func TestFIFODepletionAcrossSuppliers(t *testing.T) {
	db := setupIntegrationDB(t)
	tenantID := seedTenant(t, db)

	partnerRepo := repositories.NewPartnerRepository(db)
	materialRepo := repositories.NewMaterialRepository(db)
	stockRepo := repositories.NewStockRepository(db)
	stockService := NewStockService(stockRepo, db)

	supplierA := seedPartner(t, partnerRepo, db, tenantID, "Supplier A", models.PartnerTypeSupplier)
	supplierB := seedPartner(t, partnerRepo, db, tenantID, "Supplier B", models.PartnerTypeSupplier)
	materialID := seedMaterial(t, materialRepo, db, tenantID, "Aluminium Scrap")

	if err := stockRepo.Deposit(db, tenantID, materialID, supplierA, dec("30"), dec("5")); err != nil {
		t.Fatalf("deposit supplier A: %v", err)
	}
	// Age the first lot so FIFO ordering is unambiguous.
	if _, err := db.Exec(
		`UPDATE stock SET last_updated = last_updated - INTERVAL '1 hour' WHERE tenant_id = $1 AND partner_id = $2`,
		tenantID, supplierA,
	); err != nil {
		t.Fatalf("age supplier A lot: %v", err)
	}
	if err := stockRepo.Deposit(db, tenantID, materialID, supplierB, dec("50"), dec("6")); err != nil {
		t.Fatalf("deposit supplier B: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	allocations, err := stockService.Deplete(tx, tenantID, materialID, dec("40"))
	if err != nil {
		t.Fatalf("Deplete: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if len(allocations) != 2 {
		t.Fatalf("expected the depletion to span 2 lots, got %d", len(allocations))
	}
	if !allocations[0].Deducted.Equal(dec("30")) || !allocations[1].Deducted.Equal(dec("10")) {
		t.Fatalf("expected deductions 30 then 10, got %s then %s", allocations[0].Deducted, allocations[1].Deducted)
	}

	// The drained supplier A lot drops out of the detail view; only the
	// partially deducted supplier B lot remains.
	lots, err := stockRepo.GetDetailByMaterial(tenantID, materialID)
	if err != nil {
		t.Fatalf("GetDetailByMaterial: %v", err)
	}
	if len(lots) != 1 {
		t.Fatalf("expected a single remaining lot, got %d", len(lots))
	}
	if lots[0].PartnerID != supplierB || !lots[0].Quantity.Equal(dec("40")) {
		t.Fatalf("expected 40 left in supplier B lot, got partner %d with %s", lots[0].PartnerID, lots[0].Quantity)
	}
}
