package engine

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ReadFrame reads a delimited text file into a raw Frame.
//
// A missing file is not an error: it is logged and an empty Frame comes
// back, so the rest of the pipeline degrades to the placeholder output.
// Content that is not valid UTF-8 is retried through a Latin-1 decoder
// before the read is given up on.
func ReadFrame(path string, log *zap.Logger) (*Frame, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("data file not found, serving empty dataset", zap.String("path", path))
			return &Frame{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if !utf8.Valid(content) {
		decoded, _, derr := transform.Bytes(charmap.ISO8859_1.NewDecoder(), content)
		if derr != nil {
			return nil, fmt.Errorf("decode %s: %w", path, derr)
		}
		log.Info("decoded data file as latin-1", zap.String("path", path))
		content = decoded
	}

	return parseFrame(content)
}

func parseFrame(content []byte) (*Frame, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Frame{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	frame := &Frame{Columns: append([]string(nil), header...)}
	ncol := len(header)
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(frame.Rows)+1, err)
		}
		// Normalize ragged rows to the header width.
		row := make([]string, ncol)
		copy(row, rec)
		frame.Rows = append(frame.Rows, row)
	}
	return frame, nil
}

// LoadDataset runs the full pipeline: read, normalize the schema, coerce
// metrics. This is the only way a Dataset is constructed; a reload builds
// a fresh one and swaps it in wholesale.
func LoadDataset(path string, log *zap.Logger) (*Dataset, error) {
	start := time.Now()

	frame, err := ReadFrame(path, log)
	if err != nil {
		return nil, err
	}

	ds := NormalizeSchema(frame)
	ds.FinalizeMetrics()

	log.Info("dataset loaded",
		zap.Int("rows", ds.Len()),
		zap.Strings("metric_columns", ds.MetricCols),
		zap.Bool("has_year", ds.HasYear),
		zap.Bool("has_region", ds.HasRegion),
		zap.Duration("elapsed", time.Since(start)))
	return ds, nil
}
