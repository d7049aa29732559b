package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/okian/podium/internal/domain/model"
)

// Dataset column names. Header order is not significant and extra columns are
// ignored.
const (
	ColumnName    = "Name"
	ColumnSex     = "Sex"
	ColumnCountry = "Country"
	ColumnSport   = "Sport"
	ColumnEvent   = "Event"
	ColumnYear    = "Year"
	ColumnMedal   = "Medal"
)

var requiredColumns = []string{
	ColumnName, ColumnSex, ColumnCountry, ColumnSport, ColumnEvent, ColumnYear, ColumnMedal,
}

type loader struct {
	objectStore ObjectStoreConfig
}

// Load reads the dataset at path into a MemoryStore. path is a local file or
// an s3://bucket/key URL; a .gz suffix is decompressed on the fly.
func Load(ctx context.Context, path string, opts ...Option) (*MemoryStore, error) {
	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidSource)
	}

	rc, err := l.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	var r io.Reader = rc
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("open gzip %s: %w", path, err)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	records, err := ParseCSV(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return NewMemoryStore(records), nil
}

func (l *loader) open(ctx context.Context, path string) (io.ReadCloser, error) {
	if strings.HasPrefix(path, objectScheme) {
		bucket, key, err := ParseObjectURL(path)
		if err != nil {
			return nil, err
		}
		return openObject(ctx, l.objectStore, bucket, key)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	return f, nil
}

// ParseCSV decodes dataset rows from r. The first row is the header.
func ParseCSV(r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}

	var (
		name    = index[ColumnName]
		sex     = index[ColumnSex]
		country = index[ColumnCountry]
		sport   = index[ColumnSport]
		event   = index[ColumnEvent]
		year    = index[ColumnYear]
		medal   = index[ColumnMedal]
	)

	records := make([]model.Record, 0, 1024)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		line, _ := cr.FieldPos(0)
		y, err := parseYear(row[year])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		records = append(records, model.Record{
			Name:    row[name],
			Sex:     row[sex],
			Country: row[country],
			Sport:   row[sport],
			Event:   row[event],
			Year:    y,
			Medal:   model.Medal(row[medal]),
		})
	}
	return records, nil
}

// parseYear accepts plain integers and integral floats such as "1996.0".
func parseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidYear, s)
	}
	return int(f), nil
}
