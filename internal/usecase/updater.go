package usecase

import (
	"context"
	"log"
	"time"

	"github.com/naka-gawa/dockerhub-pulls/internal/gateway"
	"github.com/naka-gawa/dockerhub-pulls/internal/sheet"
)

// Tab names of the shared spreadsheet.
const (
	RawTab          = "Raw"
	PreprocessedTab = "Pre-processed"
)

// UpdateResult reports where the dated columns were written.
type UpdateResult struct {
	Date               string
	RawColumn          string
	PreprocessedColumn string
}

// Updater is the use case for appending a dated snapshot to the shared spreadsheet.
type Updater struct {
	store  gateway.SheetStore
	logger *log.Logger
	now    func() time.Time
}

// NewUpdater creates a new Updater instance.
func NewUpdater(store gateway.SheetStore, logger *log.Logger, now func() time.Time) *Updater {
	if now == nil {
		now = time.Now
	}
	return &Updater{
		store:  store,
		logger: logger,
		now:    now,
	}
}

// Update appends today's pull counts to the Raw tab and the matching delta formulas to
// the Pre-processed tab. Each tab is read whole and overwritten whole.
func (u *Updater) Update(ctx context.Context, counts map[string]int) (*UpdateResult, error) {
	date := u.now().Format(sheet.DateLayout)
	u.logger.Printf("Usecase: Updating spreadsheet for %s...\n", date)

	values, err := u.store.ReadRange(ctx, RawTab)
	if err != nil {
		return nil, err
	}
	raw := sheet.Grid(values)
	rawCol, err := raw.AppendRawColumn(RawTab, date, counts)
	if err != nil {
		return nil, err
	}
	if err := u.store.WriteRange(ctx, RawTab, raw, gateway.InputRaw); err != nil {
		return nil, err
	}
	u.logger.Printf("  %s: wrote column %s\n", RawTab, sheet.ColumnLetter(rawCol))

	values, err = u.store.ReadRange(ctx, PreprocessedTab)
	if err != nil {
		return nil, err
	}
	pre := sheet.Grid(values)
	preCol, err := pre.AppendDeltaColumn(PreprocessedTab, RawTab, date, rawCol)
	if err != nil {
		return nil, err
	}
	if err := u.store.WriteRange(ctx, PreprocessedTab, pre, gateway.InputUserEntered); err != nil {
		return nil, err
	}
	u.logger.Printf("  %s: wrote column %s\n", PreprocessedTab, sheet.ColumnLetter(preCol))

	u.logger.Println("Usecase: Spreadsheet update complete.")
	return &UpdateResult{
		Date:               date,
		RawColumn:          sheet.ColumnLetter(rawCol),
		PreprocessedColumn: sheet.ColumnLetter(preCol),
	}, nil
}
