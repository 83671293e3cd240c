package export

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// WriteWorkbook renders the itinerary as an XLSX workbook at path: one
// summary sheet and one row per stop on a stops sheet.
func (e *Exporter) WriteWorkbook(ctx context.Context, it *Itinerary, path string) error {
	if err := ctx.Err(); err != nil {
		return eris.Wrap(err, "export: workbook cancelled")
	}

	f := xlsx.NewFile()

	summary, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "export: add summary sheet")
	}
	addRow(summary, "Destination", it.Destination)
	addRow(summary, "Dates", fmt.Sprintf("%s - %s", it.StartDate, it.EndDate))
	addRow(summary, "Days", fmt.Sprintf("%d", len(it.Days)))
	addRow(summary, "Discovered", fmt.Sprintf("%d", it.Stats.TotalScraped))
	addRow(summary, "Verified", fmt.Sprintf("%d", it.Stats.TotalVerified))
	addRow(summary, "Included", fmt.Sprintf("%d", it.Stats.TotalIncluded))

	stops, err := f.AddSheet("Stops")
	if err != nil {
		return eris.Wrap(err, "export: add stops sheet")
	}
	addRow(stops, "Day", "Stop", "Name", "Address", "Category", "Score", "Note")

	for dayIdx, day := range it.Days {
		for stopIdx, poi := range day {
			addRow(stops,
				fmt.Sprintf("%d", dayIdx+1),
				fmt.Sprintf("%d", stopIdx+1),
				poi.Name,
				poi.Address,
				poi.Category,
				fmt.Sprintf("%.1f", poi.PersonaScore),
				poi.AgentNote,
			)
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save workbook")
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().Value = v
	}
}
