package io

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/brewlab/percolate/internal/dataframe"
	"github.com/brewlab/percolate/internal/series"
)

const (
	trueStr  = "true"
	falseStr = "false"

	boolType   = "bool"
	intType    = "int"
	floatType  = "float"
	stringType = "string"

	// utf8BOM sometimes prefixes the first header of exported survey files
	utf8BOM = "\ufeff"
)

// Read reads CSV data and returns a DataFrame. An empty cell is recorded
// as a null of the column's inferred type, never as a zero value.
func (r *CSVReader) Read() (*dataframe.DataFrame, error) {
	csvReader := csv.NewReader(r.reader)
	csvReader.Comma = r.options.Delimiter
	csvReader.Comment = r.options.Comment

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	if len(records) == 0 {
		return dataframe.New(), nil
	}

	var headers []string
	var dataRows [][]string

	if r.options.Header {
		headers = records[0]
		dataRows = records[1:]
	} else {
		numCols := len(records[0])
		headers = make([]string, numCols)
		for i := 0; i < numCols; i++ {
			headers[i] = fmt.Sprintf("column_%d", i)
		}
		dataRows = records
	}

	if r.options.TrimHeaders {
		headers = cleanHeaders(headers)
	}

	// Transpose data to work with columns
	numCols := len(headers)
	columns := make([][]string, numCols)
	for i := 0; i < numCols; i++ {
		columns[i] = make([]string, len(dataRows))
		for j, row := range dataRows {
			if i < len(row) {
				columns[i][j] = row[i]
			} else {
				columns[i][j] = ""
			}
		}
	}

	seriesList := make([]dataframe.ISeries, 0, numCols)
	for i, header := range headers {
		s := r.createSeriesFromStrings(header, columns[i])
		seriesList = append(seriesList, s)
	}

	return dataframe.New(seriesList...), nil
}

// cleanHeaders strips a leading BOM from the first header and trims
// surrounding whitespace from all of them.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, h := range headers {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		cleaned[i] = strings.TrimSpace(h)
	}
	return cleaned
}

// createSeriesFromStrings creates a series from raw cells, inferring the type
func (r *CSVReader) createSeriesFromStrings(name string, data []string) dataframe.ISeries {
	valid := make([]bool, len(data))
	for i, value := range data {
		valid[i] = value != ""
	}

	switch r.inferDataType(data) {
	case boolType:
		return r.createBoolSeries(name, data, valid)
	case intType:
		return r.createIntSeries(name, data, valid)
	case floatType:
		return r.createFloatSeries(name, data, valid)
	default:
		return series.NewNullable(name, data, valid, r.mem)
	}
}

// inferDataType determines the most appropriate data type for the given cells
func (r *CSVReader) inferDataType(data []string) string {
	canBeInt := true
	canBeFloat := true
	canBeBool := true
	hasNonEmptyValue := false

	for _, value := range data {
		if value == "" {
			continue // Empty cells are nulls of whatever type wins
		}
		hasNonEmptyValue = true

		if canBeBool {
			lower := strings.ToLower(value)
			if lower != trueStr && lower != falseStr {
				canBeBool = false
			}
		}

		if canBeInt {
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				canBeInt = false
			}
		}

		if canBeFloat {
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				canBeFloat = false
			}
		}
	}

	// An all-empty column stays string-typed
	if !hasNonEmptyValue {
		return stringType
	}

	if canBeBool {
		return boolType
	}
	if canBeInt {
		return intType
	}
	if canBeFloat {
		return floatType
	}
	return stringType
}

func (r *CSVReader) createBoolSeries(name string, data []string, valid []bool) dataframe.ISeries {
	boolData := make([]bool, len(data))
	for i, value := range data {
		if valid[i] {
			boolData[i] = strings.EqualFold(value, trueStr)
		}
	}
	return series.NewNullable(name, boolData, valid, r.mem)
}

func (r *CSVReader) createIntSeries(name string, data []string, valid []bool) dataframe.ISeries {
	intData := make([]int64, len(data))
	for i, value := range data {
		if valid[i] {
			val, _ := strconv.ParseInt(value, 10, 64)
			intData[i] = val
		}
	}
	return series.NewNullable(name, intData, valid, r.mem)
}

func (r *CSVReader) createFloatSeries(name string, data []string, valid []bool) dataframe.ISeries {
	floatData := make([]float64, len(data))
	for i, value := range data {
		if valid[i] {
			val, _ := strconv.ParseFloat(value, 64)
			floatData[i] = val
		}
	}
	return series.NewNullable(name, floatData, valid, r.mem)
}

// Write writes the DataFrame to CSV format. Nulls render as empty cells
// and the final column order is preserved; no index column is emitted.
func (w *CSVWriter) Write(df *dataframe.DataFrame) error {
	csvWriter := csv.NewWriter(w.writer)
	csvWriter.Comma = w.options.Delimiter
	defer csvWriter.Flush()

	if w.options.Header {
		if err := csvWriter.Write(df.Columns()); err != nil {
			return fmt.Errorf("writing headers: %w", err)
		}
	}

	columns := df.Columns()
	for i := 0; i < df.Len(); i++ {
		row := make([]string, df.Width())
		for j, colName := range columns {
			column, exists := df.Column(colName)
			if !exists {
				row[j] = ""
				continue
			}
			row[j] = column.GetAsString(i)
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}
