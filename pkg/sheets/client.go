package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/pennywise/pennywise/internal/config"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

var ErrDisabled = errors.New("google sheets export is not configured")

// Writer replaces the content of one sheet tab.
type Writer interface {
	Replace(ctx context.Context, sheet string, rows [][]string) (int, error)
}

// Client writes to a single spreadsheet through the Sheets API.
type Client struct {
	svc           *gsheet.Service
	spreadsheetId string
}

// NewClient authenticates with a service account file when one is configured,
// otherwise with an OAuth client file plus a previously saved token file.
func NewClient(ctx context.Context, cfg config.Sheets) (*Client, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}

	var opts []option.ClientOption
	switch {
	case cfg.ServiceAccountFile != "":
		credentials, err := os.ReadFile(cfg.ServiceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(credentials), option.WithScopes(gsheet.SpreadsheetsScope))
	case cfg.OAuthClientFile != "" && cfg.OAuthTokenFile != "":
		client, err := oauthClient(ctx, cfg.OAuthClientFile, cfg.OAuthTokenFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithHTTPClient(client))
	default:
		return nil, errors.New("missing google credentials: set sheets.serviceaccountfile or sheets.oauthclientfile and sheets.oauthtokenfile")
	}

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		err := fmt.Errorf("unable to create Sheets client: %w", err)
		log.Error(err)
		return nil, err
	}
	return &Client{svc: svc, spreadsheetId: cfg.SpreadsheetId}, nil
}

func oauthClient(ctx context.Context, clientFile, tokenFile string) (*http.Client, error) {
	b, err := os.ReadFile(clientFile)
	if err != nil {
		return nil, fmt.Errorf("read oauth client file: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(b, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("oauth config: %w", err)
	}
	token, err := readToken(tokenFile)
	if err != nil {
		return nil, err
	}
	return oauthConfig.Client(ctx, token), nil
}

// Replace clears the sheet and writes rows starting at A1. The tab is created
// when the spreadsheet does not have it yet.
func (c *Client) Replace(ctx context.Context, sheet string, rows [][]string) (int, error) {
	if err := c.ensureSheet(ctx, sheet); err != nil {
		return 0, err
	}

	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetId, sheet, &gsheet.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("unable to clear sheet %s: %w", sheet, err)
		log.Error(err)
		return 0, err
	}

	resp, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetId, sheet+"!A1", &gsheet.ValueRange{Values: ToValues(rows)}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		err := fmt.Errorf("unable to update sheet %s: %w", sheet, err)
		log.Error(err)
		return 0, err
	}
	return int(resp.UpdatedRows), nil
}

func (c *Client) ensureSheet(ctx context.Context, sheet string) error {
	spreadsheet, err := c.svc.Spreadsheets.Get(c.spreadsheetId).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("unable to read spreadsheet %s: %w", c.spreadsheetId, err)
		log.Error(err)
		return err
	}
	for _, s := range spreadsheet.Sheets {
		if s.Properties != nil && s.Properties.Title == sheet {
			return nil
		}
	}

	log.Infof("Creating sheet %s in spreadsheet %s", sheet, c.spreadsheetId)
	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetId, &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{AddSheet: &gsheet.AddSheetRequest{Properties: &gsheet.SheetProperties{Title: sheet}}}},
	}).Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("unable to create sheet %s: %w", sheet, err)
		log.Error(err)
		return err
	}
	return nil
}

// ToValues converts CSV style rows into the cell matrix the Sheets API takes.
func ToValues(rows [][]string) [][]interface{} {
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		values = append(values, cells)
	}
	return values
}

func readToken(tokenFile string) (*oauth2.Token, error) {
	f, err := os.Open(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("open token file: %w", err)
	}
	defer f.Close()
	var token oauth2.Token
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, fmt.Errorf("decode token file: %w", err)
	}
	return &token, nil
}
