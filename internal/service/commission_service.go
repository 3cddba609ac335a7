package service

import (
	"time"

	"github.com/cargomart/internal/constants"
	"github.com/cargomart/internal/logger"
	"github.com/cargomart/internal/models"
	"github.com/cargomart/internal/repository"

	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
)

// CommissionService computes per-cargo commissions and settles them into
// fixed calendar periods starting on the 1st and 15th of each month.
type CommissionService struct {
	paymentRepo  repository.PaymentRepository
	cargoRepo    repository.CargoRepository
	supplierRepo repository.SupplierRepository
	pricing      *PricingService
}

// NewCommissionService creates the commission service.
func NewCommissionService(
	paymentRepo repository.PaymentRepository,
	cargoRepo repository.CargoRepository,
	supplierRepo repository.SupplierRepository,
	pricing *PricingService,
) *CommissionService {
	return &CommissionService{
		paymentRepo:  paymentRepo,
		cargoRepo:    cargoRepo,
		supplierRepo: supplierRepo,
		pricing:      pricing,
	}
}

// ApplyCommissions writes the commission ledger row for one cargo. Running
// it again for the same cargo is a no-op.
func (s *CommissionService) ApplyCommissions(cargoID uint) (*models.CargoSupplierPayment, error) {
	existing, err := s.paymentRepo.GetByCargoID(cargoID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	cargo, err := s.cargoRepo.GetByID(cargoID)
	if err != nil {
		return nil, err
	}
	if cargo == nil {
		return nil, ErrNotFound
	}

	pricing, err := s.pricing.Resolve(cargo.SupplierID, cargo.CargoMethod, cargo.SourceLocationID, cargo.DestinationLocationID)
	if err != nil {
		return nil, err
	}

	supplierCommission := decimal.Zero
	for _, item := range cargo.Items {
		field, ok := pricing.PriceFields.Find(item.CargoTypeID)
		if !ok {
			return nil, ErrUnsupportedCargoType
		}
		switch field.PricingMode {
		case constants.PricingModePerItem:
			supplierCommission = supplierCommission.Add(
				decimal.NewFromInt(int64(item.Qty)).Mul(field.CommissionRate.Decimal))
		default:
			supplierCommission = supplierCommission.Add(
				item.Weight.Decimal.Mul(field.CommissionRate.Decimal))
		}
	}

	customerCommission := cargo.ServiceFee.Decimal
	payment := &models.CargoSupplierPayment{
		SupplierID:         cargo.SupplierID,
		CargoID:            cargo.ID,
		Revenue:            cargo.TotalFee,
		Profit:             models.NewMoneyFromDecimal(cargo.Fee.Decimal.Sub(supplierCommission)),
		SupplierCommission: models.NewMoneyFromDecimal(supplierCommission),
		CustomerCommission: models.NewMoneyFromDecimal(customerCommission),
		Commission:         models.NewMoneyFromDecimal(supplierCommission.Add(customerCommission)),
		PaymentStatus:      constants.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// NormalizePeriod truncates the time to midnight and rejects dates other
// than the 1st or 15th.
func NormalizePeriod(period time.Time) (time.Time, error) {
	normalized := now.New(period).BeginningOfDay()
	if day := normalized.Day(); day != 1 && day != 15 {
		return time.Time{}, ErrInvalidPeriod
	}
	return normalized, nil
}

// AssignPaymentPeriod stamps the period onto the supplier's pending,
// still-unassigned payments. Re-running with the same period is safe.
func (s *CommissionService) AssignPaymentPeriod(supplierID uint, period time.Time) (int64, error) {
	normalized, err := NormalizePeriod(period)
	if err != nil {
		return 0, err
	}
	supplier, err := s.supplierRepo.GetByID(supplierID)
	if err != nil {
		return 0, err
	}
	if supplier == nil {
		return 0, ErrNotFound
	}
	return s.paymentRepo.AssignPeriod(supplierID, normalized, time.Now())
}

// SetPeriodPaymentStatus bulk-sets the payment status of one period across
// all suppliers.
func (s *CommissionService) SetPeriodPaymentStatus(period time.Time, status string) (int64, error) {
	normalized, err := NormalizePeriod(period)
	if err != nil {
		return 0, err
	}
	if status != constants.PaymentStatusPending && status != constants.PaymentStatusPaid {
		return 0, ErrValidation
	}
	return s.paymentRepo.SetPeriodStatus(normalized, status, time.Now())
}

// SupplierStats windowed cargo and payment aggregates for one supplier.
type SupplierStats struct {
	TotalCargos        int64        `json:"total_cargos"`
	NewCargos          int64        `json:"new_cargos"`
	InProgressCargos   int64        `json:"in_progress_cargos"`
	DeliveredCargos    int64        `json:"delivered_cargos"`
	Profit             models.Money `json:"profit"`
	CommissionPayments models.Money `json:"commission_payments"`
}

// Stats aggregates cargos and commission payments inside the window.
func (s *CommissionService) Stats(supplierID uint, start, end time.Time) (*SupplierStats, error) {
	counts, err := s.cargoRepo.CountByStatusInWindow(supplierID, start, end)
	if err != nil {
		return nil, err
	}
	stats := &SupplierStats{}
	var settled int64
	for _, row := range counts {
		stats.TotalCargos += row.Count
		switch row.Status {
		case constants.CargoStatusNewRequest:
			stats.NewCargos += row.Count
			settled += row.Count
		case constants.CargoStatusDelivered:
			stats.DeliveredCargos += row.Count
			settled += row.Count
		case constants.CargoStatusCancelled, constants.CargoStatusRejected:
			settled += row.Count
		}
	}
	stats.InProgressCargos = stats.TotalCargos - settled

	payments, err := s.paymentRepo.ListBySupplierWindow(supplierID, start, end)
	if err != nil {
		return nil, err
	}
	profit := decimal.Zero
	commission := decimal.Zero
	for _, payment := range payments {
		profit = profit.Add(payment.Profit.Decimal)
		commission = commission.Add(payment.Commission.Decimal)
	}
	stats.Profit = models.NewMoneyFromDecimal(profit)
	stats.CommissionPayments = models.NewMoneyFromDecimal(commission)
	return stats, nil
}

// PaymentPeriodSummary one settlement period of a supplier with summed
// monetary fields. PaymentStatus is paid only when every constituent
// payment is paid.
type PaymentPeriodSummary struct {
	Period             time.Time    `json:"period"`
	PaymentCount       int          `json:"payment_count"`
	Revenue            models.Money `json:"revenue"`
	Profit             models.Money `json:"profit"`
	SupplierCommission models.Money `json:"supplier_commission"`
	CustomerCommission models.Money `json:"customer_commission"`
	Commission         models.Money `json:"commission"`
	PaymentStatus      string       `json:"payment_status"`
}

// ListPaymentPeriods groups the supplier's assigned payments by period.
func (s *CommissionService) ListPaymentPeriods(supplierID uint, start, end time.Time) ([]PaymentPeriodSummary, error) {
	payments, err := s.paymentRepo.ListAssignedBySupplierWindow(supplierID, start, end)
	if err != nil {
		return nil, err
	}

	summaries := make([]PaymentPeriodSummary, 0)
	index := make(map[time.Time]int)
	for _, payment := range payments {
		if payment.Period == nil {
			continue
		}
		key := *payment.Period
		i, ok := index[key]
		if !ok {
			i = len(summaries)
			index[key] = i
			summaries = append(summaries, PaymentPeriodSummary{
				Period:        key,
				PaymentStatus: constants.PaymentStatusPaid,
			})
		}
		summary := &summaries[i]
		summary.PaymentCount++
		summary.Revenue = models.NewMoneyFromDecimal(summary.Revenue.Decimal.Add(payment.Revenue.Decimal))
		summary.Profit = models.NewMoneyFromDecimal(summary.Profit.Decimal.Add(payment.Profit.Decimal))
		summary.SupplierCommission = models.NewMoneyFromDecimal(summary.SupplierCommission.Decimal.Add(payment.SupplierCommission.Decimal))
		summary.CustomerCommission = models.NewMoneyFromDecimal(summary.CustomerCommission.Decimal.Add(payment.CustomerCommission.Decimal))
		summary.Commission = models.NewMoneyFromDecimal(summary.Commission.Decimal.Add(payment.Commission.Decimal))
		if payment.PaymentStatus != constants.PaymentStatusPaid {
			summary.PaymentStatus = constants.PaymentStatusPending
		}
	}
	return summaries, nil
}

// CloseDuePeriods assigns the current period to every active supplier's
// unassigned payments. Does nothing outside the 1st and 15th. Safe to call
// repeatedly on the same day.
func (s *CommissionService) CloseDuePeriods(at time.Time) (int64, error) {
	period := now.New(at).BeginningOfDay()
	if day := period.Day(); day != 1 && day != 15 {
		return 0, nil
	}
	suppliers, err := s.supplierRepo.ListActive()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, supplier := range suppliers {
		affected, err := s.paymentRepo.AssignPeriod(supplier.ID, period, time.Now())
		if err != nil {
			logger.Errorw("period_close_failed", "supplier_id", supplier.ID, "period", period, "error", err)
			continue
		}
		total += affected
	}
	return total, nil
}
