package export

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/wayfarer-labs/planner-cli/internal/model"
)

// WriteDocument renders the itinerary as a markdown document at path.
func (e *Exporter) WriteDocument(ctx context.Context, it *Itinerary, path string) error {
	if err := ctx.Err(); err != nil {
		return eris.Wrap(err, "export: document cancelled")
	}
	doc := RenderMarkdown(it)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return eris.Wrap(err, "export: write document")
	}
	return nil
}

// RenderMarkdown produces the full markdown itinerary.
func RenderMarkdown(it *Itinerary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Itinerary\n\n", it.Destination)
	fmt.Fprintf(&b, "%s → %s · %s Style\n\n", it.StartDate, it.EndDate, model.DisplayPersonas(it.Personas))

	if it.Profile != "" {
		fmt.Fprintf(&b, "> %s\n\n", it.Profile)
	}

	fmt.Fprintf(&b, "| Discovered | Verified | Included |\n|---|---|---|\n| %d | %d | %d |\n\n",
		it.Stats.TotalScraped, it.Stats.TotalVerified, it.Stats.TotalIncluded)

	startDate, dateErr := time.Parse(model.DateLayout, it.StartDate)

	for dayNum, day := range it.Days {
		if len(day) == 0 {
			continue
		}

		heading := fmt.Sprintf("Day %d", dayNum+1)
		if dateErr == nil {
			d := startDate.AddDate(0, 0, dayNum)
			heading += " — " + d.Format("Monday, January 2")
		}
		fmt.Fprintf(&b, "## %s\n\n", heading)

		for stopNum, poi := range day {
			fmt.Fprintf(&b, "%d. **%s**", stopNum+1, poi.Name)
			var details []string
			if poi.Address != "" {
				details = append(details, poi.Address)
			}
			if poi.Category != "" {
				details = append(details, poi.Category)
			}
			if poi.PersonaScore > 0 {
				details = append(details, fmt.Sprintf("%s (%.1f/10)", stars(poi.PersonaScore), poi.PersonaScore))
			}
			if len(details) > 0 {
				fmt.Fprintf(&b, " · %s", strings.Join(details, " · "))
			}
			b.WriteString("\n")
			if poi.AgentNote != "" {
				fmt.Fprintf(&b, "   - %s\n", poi.AgentNote)
			}
		}

		if url := DirectionsURL(day); url != "" {
			fmt.Fprintf(&b, "\n[Directions](%s)\n", url)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "---\n\nGenerated %s\n", time.Now().Format("2006-01-02 15:04"))
	return b.String()
}

// DirectionsURL builds a Google Maps directions link for an ordered day.
// Returns "" when fewer than two stops have coordinates.
func DirectionsURL(day model.DayPlan) string {
	var pts []string
	for _, poi := range day {
		if poi.Geocoded() {
			pts = append(pts, fmt.Sprintf("%g,%g", *poi.Lat, *poi.Lng))
		}
	}
	if len(pts) < 2 {
		return ""
	}

	origin, dest := pts[0], pts[len(pts)-1]
	if len(pts) > 2 {
		waypoints := strings.Join(pts[1:len(pts)-1], "|")
		return fmt.Sprintf("https://www.google.com/maps/dir/%s/%s?waypoints=%s", origin, dest, waypoints)
	}
	return fmt.Sprintf("https://www.google.com/maps/dir/%s/%s", origin, dest)
}

// stars renders a score out of 10 as a five star scale.
func stars(score float64) string {
	filled := int(score / 2)
	if filled > 5 {
		filled = 5
	}
	return strings.Repeat("★", filled) + strings.Repeat("☆", 5-filled)
}
