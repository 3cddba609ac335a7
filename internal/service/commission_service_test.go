package service

import (
	"errors"
	"testing"
	"time"

	"github.com/cargomart/internal/constants"
	"github.com/cargomart/internal/models"
)

func TestApplyCommissionsPerWeight(t *testing.T) {
	f := setupCargoServiceTest(t)
	cargo, err := f.svc.CreateCargo(f.baseInput())
	if err != nil {
		t.Fatalf("create cargo failed: %v", err)
	}

	payment, err := f.commission.ApplyCommissions(cargo.ID)
	if err != nil {
		t.Fatalf("apply commissions failed: %v", err)
	}
	// 15kg at a 1.5 commission rate
	assertMoney(t, payment.SupplierCommission, "22.5", "supplier commission")
	assertMoney(t, payment.CustomerCommission, "3", "customer commission")
	assertMoney(t, payment.Commission, "25.5", "commission")
	assertMoney(t, payment.Revenue, "33", "revenue")
	assertMoney(t, payment.Profit, "7.5", "profit")
	if payment.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("payment status = %s, want pending", payment.PaymentStatus)
	}
	if payment.Period != nil {
		t.Fatalf("fresh payment should have no period")
	}
}

func TestApplyCommissionsPerItem(t *testing.T) {
	f := setupCargoServiceTest(t)
	input := f.baseInput()
	input.Items = []CargoItemInput{
		{CargoTypeID: f.perItemType.ID, Weight: mny("12"), Qty: 4},
	}
	cargo, err := f.svc.CreateCargo(input)
	if err != nil {
		t.Fatalf("create cargo failed: %v", err)
	}

	payment, err := f.commission.ApplyCommissions(cargo.ID)
	if err != nil {
		t.Fatalf("apply commissions failed: %v", err)
	}
	// 4 items at a 0.5 commission rate
	assertMoney(t, payment.SupplierCommission, "2", "supplier commission")
	assertMoney(t, payment.CustomerCommission, "14.4", "customer commission")
	assertMoney(t, payment.Profit, "18", "profit")
}

func TestApplyCommissionsIdempotent(t *testing.T) {
	f := setupCargoServiceTest(t)
	cargo, err := f.svc.CreateCargo(f.baseInput())
	if err != nil {
		t.Fatalf("create cargo failed: %v", err)
	}

	first, err := f.commission.ApplyCommissions(cargo.ID)
	if err != nil {
		t.Fatalf("apply commissions failed: %v", err)
	}
	second, err := f.commission.ApplyCommissions(cargo.ID)
	if err != nil {
		t.Fatalf("second apply failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("second run created a new row: %d vs %d", first.ID, second.ID)
	}
	var count int64
	if err := f.db.Model(&models.CargoSupplierPayment{}).Count(&count).Error; err != nil {
		t.Fatalf("count payments failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("payment rows = %d, want 1", count)
	}
}

func TestApplyCommissionsMissingCargo(t *testing.T) {
	f := setupCargoServiceTest(t)
	if _, err := f.commission.ApplyCommissions(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestNormalizePeriod(t *testing.T) {
	mid := time.Date(2026, 9, 15, 13, 45, 0, 0, time.Local)
	normalized, err := NormalizePeriod(mid)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	want := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	if !normalized.Equal(want) {
		t.Fatalf("normalized = %v, want %v", normalized, want)
	}

	first, err := NormalizePeriod(time.Date(2026, 9, 1, 0, 0, 1, 0, time.Local))
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if first.Day() != 1 || first.Hour() != 0 {
		t.Fatalf("normalized = %v", first)
	}

	if _, err := NormalizePeriod(time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local)); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("err = %v, want ErrInvalidPeriod", err)
	}
}

func TestAssignPaymentPeriodIdempotent(t *testing.T) {
	f := setupCargoServiceTest(t)
	cargo, err := f.svc.CreateCargo(f.baseInput())
	if err != nil {
		t.Fatalf("create cargo failed: %v", err)
	}
	if _, err := f.commission.ApplyCommissions(cargo.ID); err != nil {
		t.Fatalf("apply commissions failed: %v", err)
	}

	period := time.Date(2030, 1, 15, 0, 0, 0, 0, time.Local)
	affected, err := f.commission.AssignPaymentPeriod(f.supplier.ID, period)
	if err != nil {
		t.Fatalf("assign period failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected = %d, want 1", affected)
	}

	affected, err = f.commission.AssignPaymentPeriod(f.supplier.ID, period)
	if err != nil {
		t.Fatalf("second assign failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("second run affected = %d, want 0", affected)
	}

	if _, err := f.commission.AssignPaymentPeriod(f.supplier.ID, time.Date(2030, 1, 3, 0, 0, 0, 0, time.Local)); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("err = %v, want ErrInvalidPeriod", err)
	}
	if _, err := f.commission.AssignPaymentPeriod(f.supplier.ID+100, period); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSetPeriodPaymentStatus(t *testing.T) {
	f := setupCargoServiceTest(t)
	cargo, err := f.svc.CreateCargo(f.baseInput())
	if err != nil {
		t.Fatalf("create cargo failed: %v", err)
	}
	if _, err := f.commission.ApplyCommissions(cargo.ID); err != nil {
		t.Fatalf("apply commissions failed: %v", err)
	}
	period := time.Date(2030, 1, 15, 0, 0, 0, 0, time.Local)
	if _, err := f.commission.AssignPaymentPeriod(f.supplier.ID, period); err != nil {
		t.Fatalf("assign period failed: %v", err)
	}

	affected, err := f.commission.SetPeriodPaymentStatus(period, constants.PaymentStatusPaid)
	if err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected = %d, want 1", affected)
	}
	var payment models.CargoSupplierPayment
	if err := f.db.Where("cargo_id = ?", cargo.ID).First(&payment).Error; err != nil {
		t.Fatalf("load payment failed: %v", err)
	}
	if payment.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("status = %s, want paid", payment.PaymentStatus)
	}

	if _, err := f.commission.SetPeriodPaymentStatus(period, "refunded"); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestListPaymentPeriodsGrouping(t *testing.T) {
	f := setupCargoServiceTest(t)
	p1 := time.Date(2030, 1, 1, 0, 0, 0, 0, time.Local)
	p2 := time.Date(2030, 1, 15, 0, 0, 0, 0, time.Local)

	payments := []models.CargoSupplierPayment{
		{SupplierID: f.supplier.ID, CargoID: 101, Period: &p1, Revenue: mny("33"), Profit: mny("7.5"), Commission: mny("25.5"), PaymentStatus: constants.PaymentStatusPaid},
		{SupplierID: f.supplier.ID, CargoID: 102, Period: &p1, Revenue: mny("10"), Profit: mny("2.5"), Commission: mny("4.5"), PaymentStatus: constants.PaymentStatusPending},
		{SupplierID: f.supplier.ID, CargoID: 103, Period: &p2, Revenue: mny("20"), Profit: mny("5"), Commission: mny("8"), PaymentStatus: constants.PaymentStatusPaid},
	}
	for i := range payments {
		if err := f.db.Create(&payments[i]).Error; err != nil {
			t.Fatalf("create payment failed: %v", err)
		}
	}

	summaries, err := f.commission.ListPaymentPeriods(f.supplier.ID, p1.Add(-time.Hour), p2.Add(time.Hour))
	if err != nil {
		t.Fatalf("list periods failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}

	first := summaries[0]
	if !first.Period.Equal(p1) {
		t.Fatalf("first period = %v, want %v", first.Period, p1)
	}
	if first.PaymentCount != 2 {
		t.Fatalf("first period payments = %d, want 2", first.PaymentCount)
	}
	assertMoney(t, first.Revenue, "43", "first period revenue")
	assertMoney(t, first.Profit, "10", "first period profit")
	assertMoney(t, first.Commission, "30", "first period commission")
	// one pending payment keeps the whole period pending
	if first.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("first period status = %s, want pending", first.PaymentStatus)
	}

	second := summaries[1]
	if second.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("second period status = %s, want paid", second.PaymentStatus)
	}
	if second.PaymentCount != 1 {
		t.Fatalf("second period payments = %d, want 1", second.PaymentCount)
	}
}

func TestSupplierStats(t *testing.T) {
	f := setupCargoServiceTest(t)
	now := time.Now()
	statuses := []string{
		constants.CargoStatusNewRequest,
		constants.CargoStatusShipped,
		constants.CargoStatusShipped,
		constants.CargoStatusDelivered,
		constants.CargoStatusCancelled,
	}
	for i, status := range statuses {
		cargo := models.Cargo{
			TrackingNo:            f.supplier.Name + time.Now().Format("150405") + string(rune('A'+i)),
			UserID:                f.user.ID,
			SupplierID:            f.supplier.ID,
			Status:                status,
			CargoMethod:           constants.CargoMethodTruck,
			SourceLocationID:      f.src.ID,
			DestinationLocationID: f.dst.ID,
		}
		if err := f.db.Create(&cargo).Error; err != nil {
			t.Fatalf("create cargo failed: %v", err)
		}
	}
	paymentRows := []models.CargoSupplierPayment{
		{SupplierID: f.supplier.ID, CargoID: 201, Profit: mny("7.5"), Commission: mny("25.5"), PaymentStatus: constants.PaymentStatusPending},
		{SupplierID: f.supplier.ID, CargoID: 202, Profit: mny("2.5"), Commission: mny("4.5"), PaymentStatus: constants.PaymentStatusPaid},
	}
	for i := range paymentRows {
		if err := f.db.Create(&paymentRows[i]).Error; err != nil {
			t.Fatalf("create payment failed: %v", err)
		}
	}

	stats, err := f.commission.Stats(f.supplier.ID, now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalCargos != 5 {
		t.Fatalf("total = %d, want 5", stats.TotalCargos)
	}
	if stats.NewCargos != 1 {
		t.Fatalf("new = %d, want 1", stats.NewCargos)
	}
	if stats.DeliveredCargos != 1 {
		t.Fatalf("delivered = %d, want 1", stats.DeliveredCargos)
	}
	if stats.InProgressCargos != 2 {
		t.Fatalf("in progress = %d, want 2", stats.InProgressCargos)
	}
	assertMoney(t, stats.Profit, "10", "profit")
	assertMoney(t, stats.CommissionPayments, "30", "commission payments")
}

func TestCloseDuePeriods(t *testing.T) {
	f := setupCargoServiceTest(t)
	cargo, err := f.svc.CreateCargo(f.baseInput())
	if err != nil {
		t.Fatalf("create cargo failed: %v", err)
	}
	if _, err := f.commission.ApplyCommissions(cargo.ID); err != nil {
		t.Fatalf("apply commissions failed: %v", err)
	}

	// not a settlement day
	assigned, err := f.commission.CloseDuePeriods(time.Date(2030, 1, 7, 9, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if assigned != 0 {
		t.Fatalf("assigned = %d, want 0", assigned)
	}

	assigned, err = f.commission.CloseDuePeriods(time.Date(2030, 1, 15, 9, 30, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if assigned != 1 {
		t.Fatalf("assigned = %d, want 1", assigned)
	}

	var payment models.CargoSupplierPayment
	if err := f.db.Where("cargo_id = ?", cargo.ID).First(&payment).Error; err != nil {
		t.Fatalf("load payment failed: %v", err)
	}
	if payment.Period == nil {
		t.Fatalf("period not assigned")
	}
	want := time.Date(2030, 1, 15, 0, 0, 0, 0, time.Local)
	if !payment.Period.Equal(want) {
		t.Fatalf("period = %v, want %v", payment.Period, want)
	}
}
