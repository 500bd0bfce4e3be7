package pitch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// requiredColumns are the header names a shape CSV must provide. Extra
// columns (is_rectangle, polygon_vertices, ...) are ignored.
var requiredColumns = []string{"cell_name", "layer", "bbox_x1", "bbox_y1", "bbox_x2", "bbox_y2"}

// LoadTable reads a shape CSV from disk into a LayerTable.
func LoadTable(path string) (LayerTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening shape csv: %w", err)
	}
	defer file.Close()
	table, err := ReadTable(file)
	if err != nil {
		return nil, fmt.Errorf("reading shape csv %s: %w", path, err)
	}
	return table, nil
}

// ReadTable parses shape rows into a LayerTable, preserving row order within
// each layer. Rows with unparsable coordinates are dropped and counted, not
// fatal; a missing required header column is.
func ReadTable(r io.Reader) (LayerTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := colIdx[name]; !ok {
			return nil, NewError(CodeMalformedInput, "csv header missing required column %q", name)
		}
	}

	table := make(LayerTable)
	dropped := 0
	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			logrus.Debugf("dropping malformed csv row %d: %v", rowNum, err)
			dropped++
			continue
		}
		rect, err := parseRow(record, colIdx)
		if err != nil {
			logrus.Debugf("dropping malformed csv row %d: %v", rowNum, err)
			dropped++
			continue
		}
		table.Add(rect)
	}
	if dropped > 0 {
		logrus.Warnf("dropped %d malformed row(s) while reading shape csv", dropped)
	}
	return table, nil
}

func parseRow(record []string, colIdx map[string]int) (Rect, error) {
	field := func(name string) (string, error) {
		i := colIdx[name]
		if i >= len(record) {
			return "", fmt.Errorf("row too short for column %q", name)
		}
		return strings.TrimSpace(record[i]), nil
	}
	coord := func(name string) (float64, error) {
		s, err := field(name)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q", name, s)
		}
		return v, nil
	}

	cell, err := field("cell_name")
	if err != nil {
		return Rect{}, err
	}
	layer, err := field("layer")
	if err != nil {
		return Rect{}, err
	}
	x1, err := coord("bbox_x1")
	if err != nil {
		return Rect{}, err
	}
	y1, err := coord("bbox_y1")
	if err != nil {
		return Rect{}, err
	}
	x2, err := coord("bbox_x2")
	if err != nil {
		return Rect{}, err
	}
	y2, err := coord("bbox_y2")
	if err != nil {
		return Rect{}, err
	}
	return NewRect(x1, y1, x2, y2, layer, cell), nil
}
