// Package google mirrors ledger rows into a Google spreadsheet using a
// service account. Each entity lives on a year-prefixed sheet ("2026
// Expenses") with the row id in column A, which makes upserts idempotent.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/mirror"
)

type Client struct {
	svc             *gsheet.Service
	spreadsheetID   string
	expensesSheet   string
	timesheetsSheet string
}

var _ mirror.Writer = (*Client)(nil)

// NewFromEnv creates a mirror client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Credentials: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional sheet base names: GOOGLE_EXPENSES_SHEET_NAME (default "Expenses"),
// GOOGLE_TIMESHEETS_SHEET_NAME (default "Timesheets"); the current year is
// prefixed automatically.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	expensesBase := strings.TrimSpace(os.Getenv("GOOGLE_EXPENSES_SHEET_NAME"))
	if expensesBase == "" {
		expensesBase = "Expenses"
	}
	timesheetsBase := strings.TrimSpace(os.Getenv("GOOGLE_TIMESHEETS_SHEET_NAME"))
	if timesheetsBase == "" {
		timesheetsBase = "Timesheets"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	year := time.Now().Year()
	return &Client{
		svc:             svc,
		spreadsheetID:   spreadsheetID,
		expensesSheet:   yearPrefixedName(expensesBase, year),
		timesheetsSheet: yearPrefixedName(timesheetsBase, year),
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

func (c *Client) UpsertExpense(ctx context.Context, userID string, e core.Expense) error {
	row := []any{
		e.ID,
		userID,
		core.DateOf(e.OccurredAt).ISO(),
		e.Name,
		string(e.Category),
		e.Amount.Amount(),
		string(e.Method),
		e.Notes,
	}
	return c.upsertRow(ctx, c.expensesSheet, e.ID, row)
}

func (c *Client) UpsertWorkEntry(ctx context.Context, userID string, e core.WorkEntry) error {
	paidDate := ""
	if !e.PaidDate.IsZero() {
		paidDate = e.PaidDate.ISO()
	}
	row := []any{
		e.ID,
		userID,
		e.WorkDate.ISO(),
		e.DayOfWeek(),
		e.JobName,
		e.HoursWorked.Float(),
		e.HourlyRate.Amount(),
		e.Earnings().Amount(),
		e.Paid,
		paidDate,
		e.TimeFrom,
		e.TimeTo,
	}
	return c.upsertRow(ctx, c.timesheetsSheet, e.ID, row)
}

// Delete clears the mirrored row so the spreadsheet does not show stale data.
func (c *Client) Delete(ctx context.Context, entity, id string) error {
	sheet, err := c.sheetFor(entity)
	if err != nil {
		return err
	}

	rowNum, err := c.findRow(ctx, sheet, id)
	if err != nil {
		return err
	}
	if rowNum == 0 {
		slog.InfoContext(ctx, "Mirror row already absent", "entity", entity, "id", id)
		return nil
	}

	rng := fmt.Sprintf("%s!A%d:L%d", sheet, rowNum, rowNum)
	_, err = c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear row %s: %w", rng, err)
	}
	return nil
}

func (c *Client) sheetFor(entity string) (string, error) {
	switch entity {
	case amqp.EntityExpense:
		return c.expensesSheet, nil
	case amqp.EntityTimesheet:
		return c.timesheetsSheet, nil
	}
	return "", fmt.Errorf("unknown mirror entity: %s", entity)
}

func (c *Client) upsertRow(ctx context.Context, sheet, id string, row []any) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rowNum, err := c.findRow(ctx, sheet, id)
	if err != nil {
		return err
	}

	vr := &gsheet.ValueRange{Values: [][]any{row}}
	if rowNum > 0 {
		rng := fmt.Sprintf("%s!A%d", sheet, rowNum)
		_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
			ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("update row %s: %w", rng, err)
		}
		return nil
	}

	rng := fmt.Sprintf("%s!A:A", sheet)
	_, err = c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", sheet, err)
	}
	return nil
}

// findRow returns the 1-based row number holding id in column A, or 0.
func (c *Client) findRow(ctx context.Context, sheet, id string) (int, error) {
	rng := fmt.Sprintf("%s!A:A", sheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", rng, err)
	}
	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[0])) == id {
			return i + 1, nil
		}
	}
	return 0, nil
}

// yearPrefixedName returns "<year> <base>" unless base already starts with a 4-digit year.
func yearPrefixedName(base string, year int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	if len(base) >= 5 {
		if y, err := strconv.Atoi(base[0:4]); err == nil && base[4] == ' ' && y > 1900 && y < 3000 {
			return base
		}
	}
	return fmt.Sprintf("%d %s", year, base)
}
