package api

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"opdash/internal/domain"
)

// CSVHeader is the first row written by WriteCSV
var CSVHeader = []string{"ID", "Name", "Owner", "Assigned", "Worked", "Country", "Priority", "Start Date", "Due Date", "Status"}

// WriteCSV writes tasks as CSV, one row per task
func WriteCSV(w io.Writer, tasks []domain.Task) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, task := range tasks {
		row := []string{
			task.ID,
			task.Name,
			task.Owner,
			strconv.Itoa(task.AssignedCount),
			strconv.Itoa(task.WorkedCount),
			string(task.Country),
			string(task.Priority),
			task.StartDate,
			task.DueDate,
			string(task.Status),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
