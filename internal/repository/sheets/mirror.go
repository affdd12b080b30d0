package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/medflow-hq/medflow/internal/config"
)

// Mirror appends backup rows to a Google Sheets spreadsheet so exports have
// an off-device copy.
type Mirror struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewMirror builds a Google Sheets backed mirror instance.
func NewMirror(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*Mirror, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &Mirror{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendRows appends the provided rows to the supplied sheet range.
func (m *Mirror) AppendRows(ctx context.Context, sheetRange string, rows [][]interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}
	if len(rows) == 0 {
		return nil
	}

	payload := &sheetsapi.ValueRange{Values: rows}

	call := m.service.Spreadsheets.Values.Append(m.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append rows into range %s: %w", sheetRange, err)
	}

	m.logger.Debug("rows appended to sheet", zap.String("range", sheetRange), zap.Int("rows", len(rows)))
	return nil
}
