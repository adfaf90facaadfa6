package service

import (
	"context"
	"time"

	"github.com/naminara/ferry-logbook/internal/domain"
)

// ShipStatus is one fleet card on the dashboard: the ship, whether it is
// currently underway, and the voyage putting it there.
type ShipStatus struct {
	Ship       domain.Ship        `json:"ship"`
	Navigating bool               `json:"navigating"`
	CurrentLog *domain.SailingLog `json:"currentLog,omitempty"`
	// Occupancy is current passengers over capacity, 0..100. Zero when idle.
	Occupancy float64 `json:"occupancy"`
}

// Overview is the dashboard summary.
type Overview struct {
	Ships           []ShipStatus `json:"ships"`
	ActiveShips     int          `json:"activeShips"`
	TodayPassengers int          `json:"todayPassengers"`
}

// DashboardStore defines the store operations the dashboard depends on.
type DashboardStore interface {
	Logs() []domain.SailingLog
	Ships() []domain.Ship
}

// DashboardService derives the fleet overview from the log collection.
// Everything here is a pure read: the dashboard owns no state of its own.
type DashboardService struct {
	store DashboardStore
	now   func() time.Time
}

// NewDashboardService constructs a DashboardService backed by the provided store.
func NewDashboardService(store DashboardStore) *DashboardService {
	return &DashboardService{store: store, now: time.Now}
}

// Overview assembles the current fleet picture: per-ship navigating state
// (the first in-progress log found for the ship, matching collection order),
// the count of ships underway, and today's total boarded passengers.
func (s *DashboardService) Overview(ctx context.Context) (Overview, error) {
	_ = ctx

	logs := s.store.Logs()
	today := s.now().Format("2006-01-02")

	var o Overview
	for _, ship := range s.store.Ships() {
		status := ShipStatus{Ship: ship}
		for i := range logs {
			l := logs[i]
			if l.ShipID == ship.ID && l.InProgress() {
				status.Navigating = true
				status.CurrentLog = &l
				if ship.Capacity > 0 {
					status.Occupancy = float64(l.PassengerCount) / float64(ship.Capacity) * 100
				}
				break
			}
		}
		if status.Navigating {
			o.ActiveShips++
		}
		o.Ships = append(o.Ships, status)
	}

	for _, l := range logs {
		if l.Date == today {
			o.TodayPassengers += l.PassengerCount
		}
	}
	return o, nil
}
