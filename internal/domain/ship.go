package domain

// Ship is one vessel of the fleet. The fleet is a fixed catalog compiled into
// the binary: the store never creates, mutates, or deletes ship records.
type Ship struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"` // maximum passengers, always positive
}

// shipCatalog is the fleet as operated today. IDs are stable and referenced
// by SailingLog.ShipID in existing durable data, so they must not be renumbered.
var shipCatalog = []Ship{
	{ID: "1", Name: "Tamnara", Capacity: 300},
	{ID: "2", Name: "Ilana", Capacity: 200},
	{ID: "3", Name: "Gaudi", Capacity: 100},
	{ID: "4", Name: "Mermaid", Capacity: 100},
}

// ShipCatalog returns a copy of the fixed fleet catalog.
// Callers may reorder or filter the returned slice freely.
func ShipCatalog() []Ship {
	out := make([]Ship, len(shipCatalog))
	copy(out, shipCatalog)
	return out
}

// ShipByID looks a ship up in the catalog. The second return value is false
// when no ship with that ID exists.
func ShipByID(id string) (Ship, bool) {
	for _, s := range shipCatalog {
		if s.ID == id {
			return s, true
		}
	}
	return Ship{}, false
}
