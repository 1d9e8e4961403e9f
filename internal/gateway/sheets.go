package gateway

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Value input options understood by the Sheets API.
const (
	InputRaw         = "RAW"
	InputUserEntered = "USER_ENTERED"
)

// SheetStore reads and overwrites whole ranges of a spreadsheet.
type SheetStore interface {
	ReadRange(ctx context.Context, rng string) ([][]interface{}, error)
	WriteRange(ctx context.Context, rng string, values [][]interface{}, inputOption string) error
}

// SheetsGateway is the Google Sheets implementation of SheetStore.
type SheetsGateway struct {
	service       *sheets.Service
	spreadsheetID string
	logger        *log.Logger
}

// NewSheetsGateway authenticates with a service account key and returns a gateway
// bound to one spreadsheet.
func NewSheetsGateway(ctx context.Context, credentialsJSON []byte, spreadsheetID string, logger *log.Logger) (*SheetsGateway, error) {
	conf, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}
	return newSheetsGateway(ctx, spreadsheetID, logger, option.WithHTTPClient(conf.Client(ctx)))
}

func newSheetsGateway(ctx context.Context, spreadsheetID string, logger *log.Logger, opts ...option.ClientOption) (*SheetsGateway, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetsGateway{
		service:       service,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}, nil
}

// ReadRange returns every value in rng.
func (g *SheetsGateway) ReadRange(ctx context.Context, rng string) ([][]interface{}, error) {
	g.logger.Printf("  Reading range %q...\n", rng)
	resp, err := g.service.Spreadsheets.Values.Get(g.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %q: %w", rng, err)
	}
	return resp.Values, nil
}

// WriteRange overwrites rng with values using the given value input option.
func (g *SheetsGateway) WriteRange(ctx context.Context, rng string, values [][]interface{}, inputOption string) error {
	g.logger.Printf("  Writing %d rows to range %q (%s)...\n", len(values), rng, inputOption)
	_, err := g.service.Spreadsheets.Values.Update(g.spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption(inputOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write range %q: %w", rng, err)
	}
	return nil
}
