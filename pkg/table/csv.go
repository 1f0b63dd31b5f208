package table

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// ReadCSV loads a comma-separated file into a Table. The first record is
// the header; every later record is a data row. Field counts must match
// the header.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("table: reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table: %s is empty", path)
	}
	return FromRecords(records[0], records[1:])
}

// ReadTSV loads a tab-separated file into a Table.
func ReadTSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.Comma = '\t'
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("table: reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table: %s is empty", path)
	}
	return FromRecords(records[0], records[1:])
}

// ReadFile dispatches on the file extension: .tsv and .tab use tabs,
// anything else is treated as comma-separated.
func ReadFile(path string) (*Table, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".tsv") || strings.HasSuffix(lower, ".tab") {
		return ReadTSV(path)
	}
	return ReadCSV(path)
}
