package cli

import (
	"context"
	"fmt"
	"strings"

	"opdash/internal/services"
)

// SummaryCommand handles the summary command
type SummaryCommand struct {
	app *App
}

// NewSummaryCommand creates a new summary command handler
func NewSummaryCommand(app *App) *SummaryCommand {
	return &SummaryCommand{app: app}
}

// Execute prints the KPIs and chart series for both collections
func (c *SummaryCommand) Execute(ctx context.Context, args []string) error {
	m := c.app.dashboard.Metrics()
	out := c.app.out

	title := "Operations Summary"
	fmt.Fprintf(out, "\n%s\n", title)
	fmt.Fprintln(out, strings.Repeat("=", len(title)))

	fmt.Fprintf(out, "%-22s %d\n", "Active tasks:", m.ActiveCount)
	fmt.Fprintf(out, "%-22s %d pending, %d in progress, %d done\n", "By status:", m.Status.Pending, m.Status.InProgress, m.Status.Done)
	fmt.Fprintf(out, "%-22s %d\n", "Units assigned:", m.AssignedTotal)
	fmt.Fprintf(out, "%-22s %d\n", "Units worked:", m.WorkedTotal)
	fmt.Fprintf(out, "%-22s %d\n", "Units remaining:", m.RemainingUnits)
	fmt.Fprintf(out, "%-22s %.1f%%\n", "Completion:", m.CompletionPercent)
	fmt.Fprintf(out, "%-22s %d (%d units)\n", "History:", m.HistoryCount, m.HistoryWorked)

	c.printSeries("Active by country", m.ActiveSeries.ByCountry)
	c.printSeries("Active by priority", m.ActiveSeries.ByPriority)
	c.printSeries("Active by owner", m.ActiveSeries.ByOwner)
	c.printSeries("History by country", m.HistorySeries.ByCountry)
	c.printSeries("History by owner", m.HistorySeries.ByOwner)

	return nil
}

func (c *SummaryCommand) printSeries(title string, points []services.SeriesPoint) {
	out := c.app.out

	fmt.Fprintf(out, "\n%s\n", title)
	fmt.Fprintf(out, "%-22s %6s %9s %9s %7s\n", "", "Tasks", "Assigned", "Worked", "Done")
	fmt.Fprintln(out, strings.Repeat("-", 57))
	for _, p := range points {
		fmt.Fprintf(out, "%-22s %6d %9d %9d %6.1f%%\n",
			truncate(p.Label, 22), p.Tasks, p.Assigned, p.Worked,
			services.CompletionPercent(p.Worked, p.Assigned))
	}
}
