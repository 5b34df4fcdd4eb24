package io

import (
	"os"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/brewlab/percolate/internal/dataframe"
	"github.com/brewlab/percolate/internal/errors"
)

// ReadCSVFile loads a CSV file into a DataFrame. A missing or unreadable
// source is a fatal error surfaced to the caller.
func ReadCSVFile(path string, options CSVOptions, mem memory.Allocator) (*dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewReadError("ReadCSVFile", path, err)
	}
	defer f.Close()

	df, err := NewCSVReader(f, options, mem).Read()
	if err != nil {
		return nil, errors.NewReadError("ReadCSVFile", path, err)
	}
	return df, nil
}

// WriteCSVFile persists a DataFrame to a CSV file.
func WriteCSVFile(path string, df *dataframe.DataFrame, options CSVOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewWriteError("WriteCSVFile", path, err)
	}

	if err := NewCSVWriter(f, options).Write(df); err != nil {
		f.Close()
		return errors.NewWriteError("WriteCSVFile", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.NewWriteError("WriteCSVFile", path, err)
	}
	return nil
}
