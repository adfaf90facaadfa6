package store

import (
	"fmt"
	"time"

	"github.com/naminara/ferry-logbook/internal/domain"
)

// SeedUsers is the built-in user roster used when no durable user slot
// exists: one account per role. IDs are stable so sample logs can
// reference them.
func SeedUsers() []domain.User {
	return []domain.User{
		{ID: "u1", Name: "Admin Kang", Role: domain.RoleAdmin, TelegramChatID: "12345678", JoinedAt: "2024-01-01"},
		{ID: "u2", Name: "Captain Lee", Role: domain.RoleCaptain, TelegramChatID: "87654321", JoinedAt: "2024-01-05"},
		{ID: "u3", Name: "Engineer Kim", Role: domain.RoleChiefEngineer, JoinedAt: "2024-01-10"},
		{ID: "u4", Name: "Crew Choi", Role: domain.RoleCrew, JoinedAt: "2024-01-12"},
	}
}

// SampleLogs generates the built-in 20-entry sailing-log set used when no
// durable log slot exists. Generation is deterministic for a given now:
// one log per day counting backwards, cycling through the fleet, with the
// four most recent voyages still underway (one per ship) so the dashboard
// has something to show on a fresh install.
func SampleLogs(now time.Time) []domain.SailingLog {
	logs := make([]domain.SailingLog, 0, 20)
	for i := 0; i < 20; i++ {
		arrival := "10:30"
		if i < 4 {
			arrival = "" // voyage in progress
		}
		notes := "Nothing to report"
		if i%5 == 0 {
			notes = "Slow sailing due to deteriorating weather"
		}
		logs = append(logs, domain.SailingLog{
			ID:              fmt.Sprintf("log-%d", i),
			Date:            now.AddDate(0, 0, -i).Format("2006-01-02"),
			DepartureTime:   "09:00",
			ArrivalTime:     arrival,
			CaptainID:       "u2",
			ChiefEngineerID: "u3",
			CrewIDs:         []string{"u4"},
			PassengerCount:  10 + (i*37)%90,
			ShipID:          fmt.Sprintf("%d", i%4+1),
			FuelStatus:      "85%",
			Notes:           notes,
			IsDraft:         false,
			CreatedAt:       now.Format(time.RFC3339),
		})
	}
	return logs
}
