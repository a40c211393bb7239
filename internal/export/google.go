// Package export pushes monthly statements to Google Sheets.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"saldo/internal/config"
	"saldo/internal/core"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// SheetsExporter writes one month's transactions as a statement into a
// spreadsheet sheet, replacing the previous contents of that sheet.
type SheetsExporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// New creates an exporter from the app config using service account
// credentials. Returns an error when the export is not configured.
func New(ctx context.Context, cfg *config.Config) (*SheetsExporter, error) {
	if !cfg.ExportEnabled() {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	var credentialsJSON []byte
	switch {
	case cfg.GoogleCredentialsJSON != "":
		credentialsJSON = []byte(cfg.GoogleCredentialsJSON)
	case cfg.GoogleCredentialsFile != "":
		data, err := os.ReadFile(cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing Google credentials (set GOOGLE_CREDENTIALS_FILE or GOOGLE_CREDENTIALS_JSON)")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsExporter{
		svc:           svc,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		sheetName:     cfg.GoogleSheetName,
	}, nil
}

var statementHeader = []any{"Date", "Category", "Description", "Kind", "Amount"}

// ExportMonth replaces the sheet contents with the month's statement and a
// closing balance row. Returns the written range reference.
func (e *SheetsExporter) ExportMonth(ctx context.Context, monthKey string, txs []core.Transaction) (string, error) {
	if e.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	rows := buildStatementRows(monthKey, txs)

	clearRange := fmt.Sprintf("%s!A:E", e.sheetName)
	if _, err := e.svc.Spreadsheets.Values.Clear(e.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("clear sheet %s: %w", e.sheetName, err)
	}

	writeRange := fmt.Sprintf("%s!A1:E%d", e.sheetName, len(rows))
	vr := &gsheet.ValueRange{Values: rows}
	if _, err := e.svc.Spreadsheets.Values.Update(e.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("write statement to %s: %w", e.sheetName, err)
	}

	return writeRange, nil
}

// buildStatementRows renders header, one row per transaction and a closing
// balance line. Amounts are written as decimal values with the expense sign.
func buildStatementRows(monthKey string, txs []core.Transaction) [][]any {
	rows := make([][]any, 0, len(txs)+2)
	rows = append(rows, statementHeader)

	var balanceCents int64
	for _, t := range txs {
		cents := t.Amount.Cents
		if t.Kind == core.Expense {
			cents = -cents
		}
		balanceCents += cents
		rows = append(rows, []any{
			t.Date,
			t.Category,
			t.Description,
			strings.ToUpper(string(t.Kind)),
			float64(cents) / 100.0,
		})
	}

	rows = append(rows, []any{monthKey, "", "Balance", "", float64(balanceCents) / 100.0})
	return rows
}
