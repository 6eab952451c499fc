// Package emitter materialises an accepted row set into the (staff × day)
// CSV grid described in spec §4.6.
package emitter

import (
	"encoding/csv"
	"io"

	"shift-scheduler/internal/domain"
)

// VacationMarker is written into a cell for a day an accepted Vacation
// symbol covers.
const VacationMarker = "公休"

const dateLayout = "2006-01-02"

// Emit writes the solution grid for symbols to w as CSV: row 0 is the
// header (blank corner cell, then one ISO date per day); subsequent rows
// are one per staff member, in input order, with the staff name in column
// 0.
func Emit(w io.Writer, c *domain.Constraints, symbols []domain.Symbol) error {
	grid := make([][]string, len(c.StaffOrder)+1)

	header := make([]string, c.Days+1)
	for day := 0; day < c.Days; day++ {
		header[day+1] = c.Date(day).Format(dateLayout)
	}
	grid[0] = header

	staffRow := make(map[domain.StaffID]int, len(c.StaffOrder))
	for i, s := range c.StaffOrder {
		staffRow[s] = i + 1
		row := make([]string, c.Days+1)
		row[0] = c.Staffs[s].Name
		grid[i+1] = row
	}

	for _, sym := range symbols {
		switch s := sym.(type) {
		case domain.Arrangement:
			name := c.Periods[s.Period].Name
			for _, staff := range s.Staffs {
				grid[staffRow[staff]][s.Day+1] = name
			}
		case domain.Vacation:
			row := staffRow[s.Staff]
			for _, day := range s.Days {
				grid[row][day+1] = VacationMarker
			}
		}
	}

	cw := csv.NewWriter(w)
	for _, row := range grid {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
