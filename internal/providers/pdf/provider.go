package pdf

import (
	"context"

	invoicedomain "github.com/maderas/backend/internal/invoice/domain"
	packingdomain "github.com/maderas/backend/internal/packing/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("pdf",
	fx.Provide(New),
)

// Provider renders printable documents.
type Provider interface {
	Invoice(ctx context.Context, invoice invoicedomain.Invoice, collections []invoicedomain.Collection) ([]byte, error)
	PackingList(ctx context.Context, packing packingdomain.Packing) ([]byte, error)
}

type PDFProvider struct {
	company string
}

func New() Provider {
	return &PDFProvider{company: "Maderas"}
}
