package domain

// SailingLog is a single voyage record. Logs are identified by ID and mutated
// by wholesale replacement; they are the top-level aggregate of the system.
//
// Date is "2006-01-02"; DepartureTime and ArrivalTime are "15:04" clock times.
// An empty ArrivalTime means the voyage has not ended — see InProgress.
// CrewIDs and the two officer IDs reference User records; dangling references
// are tolerated and render blank in derived views.
type SailingLog struct {
	ID              string   `json:"id"`
	Date            string   `json:"date"`
	DepartureTime   string   `json:"departureTime"`
	ArrivalTime     string   `json:"arrivalTime"`
	CaptainID       string   `json:"captainId"`
	ChiefEngineerID string   `json:"chiefEngineerId"`
	CrewIDs         []string `json:"crewIds"`
	PassengerCount  int      `json:"passengerCount"`
	ShipID          string   `json:"shipId"`
	FuelStatus      string   `json:"fuelStatus"` // free text, e.g. "85%" or "500L"
	Notes           string   `json:"notes"`
	IsDraft         bool     `json:"isDraft"`
	CreatedAt       string   `json:"createdAt"` // RFC 3339 timestamp
}

// InProgress reports whether the voyage is currently underway: it has
// departed but not yet arrived. This is always derived from the two time
// fields, never stored, so the classification cannot drift from the data.
func (l SailingLog) InProgress() bool {
	return l.DepartureTime != "" && l.ArrivalTime == ""
}

// Complete reports whether every field required for a final (non-draft) save
// is present. Notes and crew are optional; everything else is mandatory.
func (l SailingLog) Complete() bool {
	return l.Date != "" &&
		l.DepartureTime != "" &&
		l.ArrivalTime != "" &&
		l.CaptainID != "" &&
		l.ChiefEngineerID != "" &&
		l.ShipID != "" &&
		l.PassengerCount > 0 &&
		l.FuelStatus != ""
}
