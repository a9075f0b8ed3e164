package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/bibbank/conveyor/internal/domain/model"
)

const keyPrefix = "conveyor:offers"

// OfferCache implements port.OfferCache on Redis.
type OfferCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewOfferCache creates a cache whose entries expire after ttl.
func NewOfferCache(client redis.Cmdable, ttl time.Duration) *OfferCache {
	return &OfferCache{client: client, ttl: ttl}
}

type cachedOffer struct {
	RequestedAmount  decimal.Decimal `json:"requested_amount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
	Rate             decimal.Decimal `json:"rate"`
	Term             int             `json:"term"`
	InsuranceEnabled bool            `json:"is_insurance_enabled"`
	SalaryClient     bool            `json:"is_salary_client"`
}

// Key returns the Redis key for an amount and term. Equal amounts with
// different scales share a key.
func Key(amount decimal.Decimal, term int) string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, amount.String(), term)
}

// Get returns the cached offers, or false on a miss.
func (c *OfferCache) Get(ctx context.Context, amount decimal.Decimal, term int) ([]model.LoanOffer, bool, error) {
	data, err := c.client.Get(ctx, Key(amount, term)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached offers: %w", err)
	}

	var records []cachedOffer
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, fmt.Errorf("decode cached offers: %w", err)
	}
	offers := make([]model.LoanOffer, 0, len(records))
	for _, r := range records {
		offers = append(offers, model.LoanOffer(r))
	}
	return offers, true, nil
}

// Put stores offers under the amount and term.
func (c *OfferCache) Put(ctx context.Context, amount decimal.Decimal, term int, offers []model.LoanOffer) error {
	data, err := encode(offers)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, Key(amount, term), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("put cached offers: %w", err)
	}
	return nil
}

func encode(offers []model.LoanOffer) ([]byte, error) {
	records := make([]cachedOffer, 0, len(offers))
	for _, o := range offers {
		records = append(records, cachedOffer(o))
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode offers: %w", err)
	}
	return data, nil
}
