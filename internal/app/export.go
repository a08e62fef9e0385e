package app

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/bnxs304/aniarchive-api/internal/domain"
)

// ExportColumn names one CSV column and extracts its value.
type ExportColumn struct {
	Header string
	Value  func(domain.Entrant) string
}

// EntrantColumns is the column set for the full entrant export.
var EntrantColumns = []ExportColumn{
	{Header: "email", Value: func(e domain.Entrant) string { return e.Email }},
	{Header: "raffle_code", Value: func(e domain.Entrant) string { return e.RaffleCode }},
	{Header: "registered_at", Value: func(e domain.Entrant) string { return e.CreatedAt.Format(time.RFC3339) }},
	{Header: "event_title", Value: func(e domain.Entrant) string { return e.EventTitle }},
	{Header: "event_date", Value: func(e domain.Entrant) string { return e.EventDate }},
}

// WinnerColumns is the column set for the winner export.
var WinnerColumns = []ExportColumn{
	{Header: "email", Value: func(e domain.Entrant) string { return e.Email }},
	{Header: "raffle_code", Value: func(e domain.Entrant) string { return e.RaffleCode }},
	{Header: "registered_at", Value: func(e domain.Entrant) string { return e.CreatedAt.Format(time.RFC3339) }},
	{Header: "event_title", Value: func(e domain.Entrant) string { return e.EventTitle }},
}

// WriteCSV renders a header row plus one row per entrant. encoding/csv
// applies RFC 4180 quoting, so embedded commas and quotes round-trip.
func WriteCSV(w io.Writer, entrants []domain.Entrant, columns []ExportColumn) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	row := make([]string, len(columns))
	for _, e := range entrants {
		for i, col := range columns {
			row[i] = col.Value(e)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportFilename builds the download name for an export kind, e.g.
// "entrants-2026-03-14.csv".
func ExportFilename(kind string, now time.Time) string {
	return fmt.Sprintf("%s-%s.csv", kind, now.Format("2006-01-02"))
}
