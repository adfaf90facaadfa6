package service

import (
	"context"
	"fmt"

	"github.com/naminara/ferry-logbook/internal/domain"
)

// ExportStore defines the store operations the export service depends on.
type ExportStore interface {
	Logs() []domain.SailingLog
	Users() []domain.User
}

// ExportService assembles flat, name-resolved rows for the spreadsheet
// export of selected sailing logs.
type ExportService struct {
	store ExportStore
}

// NewExportService constructs an ExportService backed by the provided store.
func NewExportService(store ExportStore) *ExportService {
	return &ExportService{store: store}
}

// Rows returns one ExportRow per selected id, in the order the ids were
// given. Officer and ship ids are resolved to names; dangling references
// render blank. An empty arrival time renders as the in-progress marker.
//
// Returns domain.ErrValidation when ids is empty and domain.ErrNotFound when
// any id does not exist in the log collection.
func (s *ExportService) Rows(ctx context.Context, ids []string) ([]domain.ExportRow, error) {
	_ = ctx

	if len(ids) == 0 {
		return nil, fmt.Errorf("service.ExportService.Rows: %w: no logs selected", domain.ErrValidation)
	}

	byID := make(map[string]domain.SailingLog)
	for _, l := range s.store.Logs() {
		byID[l.ID] = l
	}
	userName := make(map[string]string)
	for _, u := range s.store.Users() {
		userName[u.ID] = u.Name
	}

	rows := make([]domain.ExportRow, 0, len(ids))
	for _, id := range ids {
		l, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("service.ExportService.Rows: log %q: %w", id, domain.ErrNotFound)
		}

		shipName := ""
		if ship, found := domain.ShipByID(l.ShipID); found {
			shipName = ship.Name
		}
		arrival := l.ArrivalTime
		if arrival == "" {
			arrival = domain.InProgressMarker
		}

		rows = append(rows, domain.ExportRow{
			Date:           l.Date,
			ShipName:       shipName,
			CaptainName:    userName[l.CaptainID],
			ChiefEngineer:  userName[l.ChiefEngineerID],
			DepartureTime:  l.DepartureTime,
			ArrivalTime:    arrival,
			PassengerCount: l.PassengerCount,
			FuelStatus:     l.FuelStatus,
			Notes:          l.Notes,
		})
	}
	return rows, nil
}
