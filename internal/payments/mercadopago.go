package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

// Checkout creates Mercado Pago payment preferences for issued invoices. The
// invoice totals are passed through untouched; no billing math happens here.
// A nil *Checkout means payments are disabled.
type Checkout struct {
	prefs preference.Client
}

func New(accessToken string) (*Checkout, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &Checkout{prefs: preference.NewClient(cfg)}, nil
}

type CheckoutLink struct {
	PreferenceID string `json:"preference_id"`
	InitPoint    string `json:"init_point"`
}

func (c *Checkout) CreateForInvoice(ctx context.Context, inv *models.Invoice) (*CheckoutLink, error) {
	req := preference.Request{
		ExternalReference: inv.InvoiceNumber,
		Items: []preference.ItemRequest{
			{
				ID:        fmt.Sprint(inv.ID),
				Title:     "Clinic invoice " + inv.InvoiceNumber,
				Quantity:  1,
				UnitPrice: inv.TotalAmount,
			},
		},
	}

	resp, err := c.prefs.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}

	return &CheckoutLink{
		PreferenceID: resp.ID,
		InitPoint:    resp.InitPoint,
	}, nil
}
