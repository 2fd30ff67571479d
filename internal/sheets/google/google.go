package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"cajachica/internal/config"
	"cajachica/internal/core"
	ports "cajachica/internal/sheets"
)

// Client appends movement rows to the shared ledger spreadsheet.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ ports.LedgerWriter = (*Client)(nil)

// NewClient builds a Sheets client from the OAuth client and token the
// configuration points at. Run the oauth-init command once to mint the token.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.GoogleSpreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}

	clientJSON, err := readCredential(cfg.GoogleOAuthClientJSON, cfg.GoogleOAuthClientFile)
	if err != nil {
		return nil, fmt.Errorf("oauth client credentials: %w", err)
	}
	tokenJSON, err := readCredential(cfg.GoogleOAuthTokenJSON, cfg.GoogleOAuthTokenFile)
	if err != nil {
		return nil, fmt.Errorf("oauth token: %w", err)
	}

	oauthCfg, err := googleoauth.ConfigFromJSON(clientJSON, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse oauth client: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenJSON, &token); err != nil {
		return nil, fmt.Errorf("parse oauth token: %w", err)
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithHTTPClient(oauthCfg.Client(ctx, &token)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		sheetName:     cfg.GoogleSheetName,
	}, nil
}

func readCredential(inline, file string) ([]byte, error) {
	if strings.TrimSpace(inline) != "" {
		return []byte(inline), nil
	}
	if strings.TrimSpace(file) != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		return b, nil
	}
	return nil, errors.New("neither inline JSON nor a file path is set")
}

// AppendMovement appends one row: date, voucher, correspondent, executor,
// category, subcategory, amount, status. The Sheets append API finds the
// next free row on its own, so concurrent workers do not clobber each other.
func (c *Client) AppendMovement(ctx context.Context, e core.Expense) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	resp, err := c.append(ctx, movementRow(e, string(e.Status)))
	if err != nil {
		return "", fmt.Errorf("append movement %d: %w", e.ID, err)
	}

	ref := ""
	if resp.Updates != nil {
		ref = resp.Updates.UpdatedRange
	}
	return ref, nil
}

// AppendCancellation records a cancellation as its own row so the sheet
// stays append-only and auditable.
func (c *Client) AppendCancellation(ctx context.Context, e core.Expense) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	if _, err := c.append(ctx, movementRow(e, "anulado")); err != nil {
		return fmt.Errorf("append cancellation %d: %w", e.ID, err)
	}
	return nil
}

func (c *Client) append(ctx context.Context, row []any) (*gsheet.AppendValuesResponse, error) {
	rng := fmt.Sprintf("%s!A:H", c.sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{row}}
	return c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
}

func movementRow(e core.Expense, status string) []any {
	amount, _ := e.Amount.Float64()
	category := e.CategoryName
	if category == "" {
		category = core.NoCategoryLabel
	}
	return []any{
		e.Date.ISO(),
		e.VoucherNumber,
		e.CorrespondentTo,
		e.Executor,
		category,
		e.Notes,
		amount,
		status,
	}
}
