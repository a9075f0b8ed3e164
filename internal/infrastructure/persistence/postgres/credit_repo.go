package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bibbank/conveyor/internal/domain/model"
	"github.com/bibbank/conveyor/internal/domain/valueobject"
	pkgpostgres "github.com/bibbank/conveyor/pkg/postgres"
)

// CreditRepo implements port.CreditRepository.
type CreditRepo struct {
	pool *pgxpool.Pool
}

// NewCreditRepo creates a new PostgreSQL-backed credit repository.
func NewCreditRepo(pool *pgxpool.Pool) *CreditRepo {
	return &CreditRepo{pool: pool}
}

// Save inserts a credit and its payment schedule in one transaction.
// Credits are immutable once calculated, so a repeated save is a no-op.
func (r *CreditRepo) Save(ctx context.Context, credit model.Credit) error {
	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		creditQuery := `
			INSERT INTO credits (
				id, application_id, amount, total_amount, monthly_payment,
				rate, psk, term, insurance_enabled, salary_client,
				status, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			ON CONFLICT (id) DO NOTHING
		`
		tag, err := tx.Exec(ctx, creditQuery,
			credit.ID(), credit.ApplicationID(), credit.Amount(), credit.TotalAmount(), credit.MonthlyPayment(),
			credit.Rate(), credit.PSK(), credit.Term(), credit.InsuranceEnabled(), credit.SalaryClient(),
			credit.Status().String(), credit.CreatedAt(),
		)
		if err != nil {
			return fmt.Errorf("save credit: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for _, e := range credit.Schedule() {
			batch.Queue(`
				INSERT INTO payment_schedule_entries (
					credit_id, number, due_date, total_payment,
					interest_payment, debt_payment, remaining_debt
				) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				credit.ID(), e.Number, e.DueDate, e.TotalPayment,
				e.InterestPayment, e.DebtPayment, e.RemainingDebt,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("save payment schedule: %w", err)
		}
		return nil
	})
}

// FindByID retrieves a credit and its payment schedule by ID.
func (r *CreditRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Credit, error) {
	query := `
		SELECT id, application_id, amount, total_amount, monthly_payment,
		       rate, psk, term, insurance_enabled, salary_client,
		       status, created_at
		FROM credits
		WHERE id = $1
	`
	credit, err := scanCredit(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return model.Credit{}, err
	}

	schedule, err := r.loadSchedule(ctx, r.pool, id)
	if err != nil {
		return model.Credit{}, err
	}

	return model.ReconstructCredit(
		credit.ID(), credit.ApplicationID(),
		credit.Amount(), credit.TotalAmount(), credit.MonthlyPayment(), credit.Rate(), credit.PSK(),
		credit.Term(), credit.InsuranceEnabled(), credit.SalaryClient(),
		schedule, credit.Status(), credit.CreatedAt(),
	), nil
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

func scanCredit(s scannable) (model.Credit, error) {
	var (
		id                                             uuid.UUID
		applicationID                                  *uuid.UUID
		amount, totalAmount, monthlyPayment, rate, psk decimal.Decimal
		term                                           int
		insuranceEnabled, salaryClient                 bool
		statusStr                                      string
		createdAt                                      time.Time
	)

	err := s.Scan(
		&id, &applicationID, &amount, &totalAmount, &monthlyPayment,
		&rate, &psk, &term, &insuranceEnabled, &salaryClient,
		&statusStr, &createdAt,
	)
	if err != nil {
		return model.Credit{}, notFound(err, "credit")
	}

	status, err := valueobject.NewCreditStatus(statusStr)
	if err != nil {
		return model.Credit{}, fmt.Errorf("parse credit status: %w", err)
	}

	return model.ReconstructCredit(
		id, applicationID,
		amount, totalAmount, monthlyPayment, rate, psk,
		term, insuranceEnabled, salaryClient,
		nil, status, createdAt,
	), nil
}

func (r *CreditRepo) loadSchedule(ctx context.Context, q pkgpostgres.Querier, creditID uuid.UUID) ([]model.ScheduleEntry, error) {
	query := `
		SELECT number, due_date, total_payment, interest_payment, debt_payment, remaining_debt
		FROM payment_schedule_entries
		WHERE credit_id = $1
		ORDER BY number
	`
	rows, err := q.Query(ctx, query, creditID)
	if err != nil {
		return nil, fmt.Errorf("query payment schedule: %w", err)
	}
	defer rows.Close()

	var schedule []model.ScheduleEntry
	for rows.Next() {
		var e model.ScheduleEntry
		if err := rows.Scan(&e.Number, &e.DueDate, &e.TotalPayment, &e.InterestPayment, &e.DebtPayment, &e.RemainingDebt); err != nil {
			return nil, fmt.Errorf("scan payment schedule entry: %w", err)
		}
		schedule = append(schedule, e)
	}
	return schedule, rows.Err()
}
