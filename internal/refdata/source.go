package refdata

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
)

// ErrSourceNotFound reports a missing reference feed. Callers treat this as a
// degraded run, not a crash.
var ErrSourceNotFound = errors.New("reference source not found")

// Expected reference feed columns, matched case-insensitively.
const (
	colState    = "statename"
	colPincode  = "pincode"
	colCity     = "Taluk"
	colDistrict = "Districtname"
)

// Source reads the pincode reference CSV and yields the unique localities of
// one state. The file is re-opened on every Load, so the sequence is
// restartable and two loads of the same file yield the same localities.
type Source struct {
	path   string
	state  string
	logger *slog.Logger
}

// NewSource binds a reference feed path to a target state filter.
func NewSource(path, state string, logger *slog.Logger) *Source {
	return &Source{path: path, state: state, logger: logger}
}

// Result carries the filtered localities together with read diagnostics.
type Result struct {
	Localities []Locality
	// Skipped counts malformed rows that were dropped.
	Skipped int
}

type identity struct {
	city     string
	district string
}

// Load reads the feed, keeps rows whose state matches the target after
// case/whitespace normalization, and dedupes on the trimmed (city, district)
// pair. The first pincode seen for a pair wins. Malformed rows are skipped
// and counted; a missing file maps to ErrSourceNotFound.
func (s *Source) Load(ctx context.Context) (Result, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrSourceNotFound, s.path)
		}
		return Result{}, fmt.Errorf("open reference source: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return Result{}, fmt.Errorf("read reference header: %w", err)
	}
	cols, err := mapHeader(header)
	if err != nil {
		return Result{}, err
	}

	want := normalizeState(s.state)
	seen := make(map[identity]struct{})
	var res Result

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			res.Skipped++
			s.logger.Warn("malformed reference row", "error", err)
			continue
		}
		if len(row) <= cols.max() {
			res.Skipped++
			s.logger.Warn("short reference row", "fields", len(row))
			continue
		}
		if normalizeState(row[cols.state]) != want {
			continue
		}

		city := strings.TrimSpace(row[cols.city])
		district := strings.TrimSpace(row[cols.district])
		key := identity{city: city, district: district}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		res.Localities = append(res.Localities, Locality{
			Pincode:  strings.TrimSpace(row[cols.pincode]),
			City:     city,
			District: district,
			State:    strings.TrimSpace(row[cols.state]),
		})
	}

	return res, nil
}

type columns struct {
	state    int
	pincode  int
	city     int
	district int
}

func (c columns) max() int {
	m := c.state
	for _, i := range []int{c.pincode, c.city, c.district} {
		if i > m {
			m = i
		}
	}
	return m
}

func mapHeader(header []string) (columns, error) {
	find := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}

	cols := columns{
		state:    find(colState),
		pincode:  find(colPincode),
		city:     find(colCity),
		district: find(colDistrict),
	}
	if cols.state < 0 || cols.pincode < 0 || cols.city < 0 || cols.district < 0 {
		return columns{}, fmt.Errorf("reference header missing required columns, got %v", header)
	}
	return cols, nil
}

// normalizeState collapses case and surrounding/internal whitespace so that
// "tamil nadu " matches "Tamil Nadu" while "Tamil Nadu-2" does not.
func normalizeState(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}
