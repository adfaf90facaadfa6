package domain

// InProgressMarker is the literal written in place of an arrival time when
// exporting a log whose voyage has not ended.
const InProgressMarker = "in progress"

// ExportRow is a single row in the sailing-log export.
// It is a flat, denormalized view: officer and ship IDs are resolved to names
// at assembly time. Dangling references resolve to empty strings rather than
// failing the export.
type ExportRow struct {
	Date           string
	ShipName       string
	CaptainName    string
	ChiefEngineer  string
	DepartureTime  string
	ArrivalTime    string // InProgressMarker when the log is still underway
	PassengerCount int
	FuelStatus     string
	Notes          string
}
