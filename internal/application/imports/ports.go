package imports

import (
	"context"
	"io"

	"github.com/jhoicas/Coinnecta-api/internal/domain/orders"
	"github.com/jhoicas/Coinnecta-api/internal/domain/repository"
)

// OrderReportParser puerto de lectura de reportes de pedidos (implementado en infrastructure/excel).
type OrderReportParser interface {
	Parse(reader io.Reader, fileName string) ([]orders.Row, error)
}

// TxRunner ejecuta el alta de una importación y su activación en una sola transacción.
type TxRunner interface {
	RunImport(ctx context.Context, fn func(
		imports repository.ImportBatchRepository,
		workspaces repository.WorkspaceRepository,
	) error) error
}
