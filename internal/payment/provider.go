package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Intent is a payment authorization created with the provider. Reference is
// the provider-side ID used to correlate webhook callbacks.
type Intent struct {
	Reference    string
	ClientSecret string
	AmountCents  int64
	Currency     string
}

// Provider creates payment intents with an external payment processor.
type Provider interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (*Intent, error)
}

// StubProvider issues locally generated intents without contacting a real
// processor. Used for development and tests.
type StubProvider struct{}

func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

func (p *StubProvider) CreateIntent(_ context.Context, amountCents int64, currency string) (*Intent, error) {
	id := uuid.New().String()
	return &Intent{
		Reference:    "pi_" + id,
		ClientSecret: fmt.Sprintf("pi_%s_secret_%s", id, uuid.New().String()),
		AmountCents:  amountCents,
		Currency:     currency,
	}, nil
}
