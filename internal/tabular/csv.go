package tabular

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
)

var ErrMissingHeader = errors.New("csv input has no header row")

var header = []string{
	ColEmployeeName, ColPosition, ColGoal, ColYear, ColTask, ColRating, ColStatus,
}

// DecodeCSV reads header-labelled rows. Unknown columns are ignored
// and missing ones read as blank, so exports from older sheets still
// load. Malformed year or rating cells degrade to their blank value
// instead of failing the batch.
func DecodeCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	head, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(head))
	for i, label := range head {
		index[label] = i
	}

	cell := func(record []string, label string) string {
		i, ok := index[label]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := Row{
			EmployeeName: cell(record, ColEmployeeName),
			Position:     cell(record, ColPosition),
			Goal:         cell(record, ColGoal),
			Task:         cell(record, ColTask),
			Status:       cell(record, ColStatus),
		}
		if year, err := strconv.Atoi(cell(record, ColYear)); err == nil {
			row.Year = year
		}
		if rating, err := strconv.Atoi(cell(record, ColRating)); err == nil {
			row.Rating = &rating
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// EncodeCSV writes the fixed header followed by one record per row.
func EncodeCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		rating := ""
		if row.Rating != nil {
			rating = strconv.Itoa(*row.Rating)
		}
		record := []string{
			row.EmployeeName,
			row.Position,
			row.Goal,
			strconv.Itoa(row.Year),
			row.Task,
			rating,
			row.Status,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
