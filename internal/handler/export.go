package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/naminara/ferry-logbook/internal/domain"
)

// csvHeaders defines the column names written as the first row of an export.
var csvHeaders = []string{
	"date", "ship", "captain", "chief_engineer",
	"departure_time", "arrival_time", "passengers", "fuel_status", "notes",
}

type exportRequest struct {
	IDs []string `json:"ids"`
}

// ExportLogs handles POST /api/export. The body selects log ids; the
// response is a CSV download covering exactly those logs in selection
// order, names resolved and voyages still underway marked in the arrival
// column.
func (s *Server) ExportLogs(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body must be JSON")
		return
	}

	rows, err := s.export.Rows(r.Context(), req.IDs)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	buf := buildCSV(rows)
	filename := fmt.Sprintf("sailing-logs_%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	buf.WriteTo(w)
}

// buildCSV encodes export rows with a header line.
func buildCSV(rows []domain.ExportRow) *bytes.Buffer {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer writes never fail.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(rowToRecord(r))
	}
	cw.Flush()
	return &buf
}

// rowToRecord encodes one export row as a flat string slice.
func rowToRecord(r domain.ExportRow) []string {
	return []string{
		r.Date,
		r.ShipName,
		r.CaptainName,
		r.ChiefEngineer,
		r.DepartureTime,
		r.ArrivalTime,
		strconv.Itoa(r.PassengerCount),
		r.FuelStatus,
		r.Notes,
	}
}
