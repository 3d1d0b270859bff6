package sheets

import (
	"context"

	"github.com/pennywise/pennywise/pkg/transfer"
	log "github.com/sirupsen/logrus"
)

// RowSource yields the header and rows of a table, as for a CSV export.
type RowSource interface {
	Rows(ctx context.Context, table transfer.Table) ([][]string, error)
}

type Result struct {
	Sheet string
	Rows  int
}

type Exporter interface {
	Export(ctx context.Context, table transfer.Table) (Result, error)
}

type ExporterImpl struct {
	source RowSource
	writer Writer
}

// NewExporter returns an exporter writing through writer. A nil writer means
// the export is not configured and every call fails with ErrDisabled.
func NewExporter(source RowSource, writer Writer) *ExporterImpl {
	return &ExporterImpl{source: source, writer: writer}
}

func (e *ExporterImpl) Export(ctx context.Context, table transfer.Table) (Result, error) {
	if e.writer == nil {
		return Result{}, ErrDisabled
	}
	rows, err := e.source.Rows(ctx, table)
	if err != nil {
		return Result{}, err
	}
	updated, err := e.writer.Replace(ctx, string(table), rows)
	if err != nil {
		return Result{}, err
	}
	log.Infof("Exported %d rows of %s to Google Sheets", len(rows)-1, table)
	return Result{Sheet: string(table), Rows: updated}, nil
}
