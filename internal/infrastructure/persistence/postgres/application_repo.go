package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bibbank/conveyor/internal/domain/model"
	"github.com/bibbank/conveyor/internal/domain/valueobject"
)

// ApplicationRepo implements port.ApplicationRepository.
type ApplicationRepo struct {
	pool *pgxpool.Pool
}

// NewApplicationRepo creates a new PostgreSQL-backed application repository.
func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

// offerRecord and statusRecord are the JSONB shapes of the offers and
// status_history columns.
type offerRecord struct {
	RequestedAmount  decimal.Decimal `json:"requested_amount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
	Rate             decimal.Decimal `json:"rate"`
	Term             int             `json:"term"`
	InsuranceEnabled bool            `json:"is_insurance_enabled"`
	SalaryClient     bool            `json:"is_salary_client"`
}

type statusRecord struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}

// Save upserts an application, guarded by its version.
func (r *ApplicationRepo) Save(ctx context.Context, app model.LoanApplication) error {
	offers, err := marshalOffers(app.Offers())
	if err != nil {
		return err
	}
	history, err := marshalHistory(app.StatusHistory())
	if err != nil {
		return err
	}
	client := app.Client()

	query := `
		INSERT INTO applications (
			id, first_name, last_name, middle_name, email,
			passport_series, passport_number,
			requested_amount, term, birth_date, offers,
			status, status_history, credit_id, refusal_reason,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		ON CONFLICT (id) DO UPDATE SET
			status         = EXCLUDED.status,
			status_history = EXCLUDED.status_history,
			credit_id      = EXCLUDED.credit_id,
			refusal_reason = EXCLUDED.refusal_reason,
			version        = applications.version + 1,
			updated_at     = EXCLUDED.updated_at
		WHERE applications.version = $16
	`
	tag, err := r.pool.Exec(ctx, query,
		app.ID(), client.FirstName, client.LastName, client.MiddleName, client.Email,
		client.PassportSeries, client.PassportNumber,
		app.RequestedAmount(), app.Term(), app.BirthDate(), offers,
		app.Status().String(), history, app.CreditID(), app.RefusalReason(),
		app.Version(), app.CreatedAt(), app.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application %s: %w", app.ID(), ErrOptimisticLock)
	}
	return nil
}

// FindByID retrieves an application by ID.
func (r *ApplicationRepo) FindByID(ctx context.Context, id uuid.UUID) (model.LoanApplication, error) {
	query := `
		SELECT id, first_name, last_name, middle_name, email,
		       passport_series, passport_number,
		       requested_amount, term, birth_date, offers,
		       status, status_history, credit_id, refusal_reason,
		       version, created_at, updated_at
		FROM applications
		WHERE id = $1
	`
	return scanApplication(r.pool.QueryRow(ctx, query, id))
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

func scanApplication(s scannable) (model.LoanApplication, error) {
	var (
		id                   uuid.UUID
		client               model.ClientInfo
		requestedAmount      decimal.Decimal
		term                 int
		birthDate            time.Time
		offersJSON           []byte
		statusStr            string
		historyJSON          []byte
		creditID             *uuid.UUID
		refusalReason        string
		version              int
		createdAt, updatedAt time.Time
	)

	err := s.Scan(
		&id, &client.FirstName, &client.LastName, &client.MiddleName, &client.Email,
		&client.PassportSeries, &client.PassportNumber,
		&requestedAmount, &term, &birthDate, &offersJSON,
		&statusStr, &historyJSON, &creditID, &refusalReason,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.LoanApplication{}, notFound(err, "application")
	}

	status, err := valueobject.NewApplicationStatus(statusStr)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("parse application status: %w", err)
	}
	offers, err := unmarshalOffers(offersJSON)
	if err != nil {
		return model.LoanApplication{}, err
	}
	history, err := unmarshalHistory(historyJSON)
	if err != nil {
		return model.LoanApplication{}, err
	}

	return model.ReconstructLoanApplication(
		id, client, requestedAmount, term, birthDate, offers,
		status, history, creditID, refusalReason,
		version, createdAt, updatedAt,
	), nil
}

func marshalOffers(offers []model.LoanOffer) ([]byte, error) {
	records := make([]offerRecord, 0, len(offers))
	for _, o := range offers {
		records = append(records, offerRecord{
			RequestedAmount:  o.RequestedAmount,
			TotalAmount:      o.TotalAmount,
			MonthlyPayment:   o.MonthlyPayment,
			Rate:             o.Rate,
			Term:             o.Term,
			InsuranceEnabled: o.InsuranceEnabled,
			SalaryClient:     o.SalaryClient,
		})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal offers: %w", err)
	}
	return data, nil
}

func unmarshalOffers(data []byte) ([]model.LoanOffer, error) {
	var records []offerRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal offers: %w", err)
	}
	offers := make([]model.LoanOffer, 0, len(records))
	for _, r := range records {
		offers = append(offers, model.LoanOffer(r))
	}
	return offers, nil
}

func marshalHistory(history []model.StatusChange) ([]byte, error) {
	records := make([]statusRecord, 0, len(history))
	for _, h := range history {
		records = append(records, statusRecord{Status: h.Status.String(), ChangedAt: h.ChangedAt})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal status history: %w", err)
	}
	return data, nil
}

func unmarshalHistory(data []byte) ([]model.StatusChange, error) {
	var records []statusRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal status history: %w", err)
	}
	history := make([]model.StatusChange, 0, len(records))
	for _, r := range records {
		status, err := valueobject.NewApplicationStatus(r.Status)
		if err != nil {
			return nil, fmt.Errorf("parse status history: %w", err)
		}
		history = append(history, model.StatusChange{Status: status, ChangedAt: r.ChangedAt})
	}
	return history, nil
}
