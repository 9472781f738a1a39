// Package store keeps the job listings dataset in memory and answers read-only
// queries over it.
//
// A Store reads its source at most once. The first query (or an explicit
// EnsureLoaded) parses the whole source; later calls reuse the parsed rows.
// A failed load leaves the store empty and unloaded, so the next call tries
// again.
package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"techjobs/internal/core/logger"
	"techjobs/internal/core/tracker"
	"techjobs/internal/core/types"
	"techjobs/internal/source"
)

// ErrTooLarge is returned when a source exceeds the configured maximum size.
var ErrTooLarge = errors.New("source exceeds maximum size")

// Observer is notified about the progress of a load.
type Observer interface {
	LoadStarted(src string, total int64)
	LoadRead(n int64)
	LoadFinished(err error)
}

type Option func(*Store)

func WithLogger(l *logger.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithComma sets the field delimiter. The default is ','.
func WithComma(comma rune) Option {
	return func(s *Store) {
		s.comma = comma
	}
}

// WithTrimLeadingSpace drops spaces that follow a delimiter. On by default.
func WithTrimLeadingSpace(trim bool) Option {
	return func(s *Store) {
		s.trimLeadingSpace = trim
	}
}

// WithRateLimit throttles reads from the source to rate bytes per second.
func WithRateLimit(rate types.Bytes) Option {
	return func(s *Store) {
		s.limiter = types.NewRateLimiter(rate)
	}
}

// WithMaxSize rejects sources larger than size. Zero means unlimited.
func WithMaxSize(size types.Bytes) Option {
	return func(s *Store) {
		s.maxSize = size.Int64()
	}
}

func WithObserver(o Observer) Option {
	return func(s *Store) {
		s.observers = append(s.observers, o)
	}
}

// FromConfig translates the data section of the configuration into options.
func FromConfig(cfg types.DataConfig) []Option {
	return []Option{
		WithComma(cfg.Comma()),
		WithTrimLeadingSpace(cfg.TrimSpace()),
		WithRateLimit(cfg.RateLimit),
		WithMaxSize(cfg.MaxBytes()),
	}
}

// Store holds one dataset. Safe for concurrent use.
type Store struct {
	src              source.Source
	logger           *logger.Logger
	comma            rune
	trimLeadingSpace bool
	limiter          *types.RateLimiter
	maxSize          int64
	observers        []Observer
	tracker          *tracker.Tracker

	mu     sync.Mutex // serializes loads
	loaded atomic.Bool
	data   *Dataset // written once, before loaded is set
}

// New creates a store over src. Nothing is read until the first query.
func New(src source.Source, opts ...Option) *Store {
	s := &Store{
		src:              src,
		logger:           logger.NewLogger(logger.WithName("store")),
		comma:            ',',
		trimLeadingSpace: true,
		limiter:          types.UnlimitedRateLimiter(),
		tracker:          tracker.NewTracker("load"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Source returns the location the store reads from.
func (s *Store) Source() string {
	return s.src.String()
}

// Loaded reports whether the dataset has been read.
func (s *Store) Loaded() bool {
	return s.loaded.Load()
}

// EnsureLoaded reads the source unless that already happened. Concurrent
// callers wait for a single load. Failures are returned as *LoadError.
func (s *Store) EnsureLoaded(ctx context.Context) error {
	if s.loaded.Load() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded.Load() {
		return nil
	}

	data, err := s.load(ctx)
	if err != nil {
		s.logger.Error("Failed to load job data", "source", s.src.String(), "error", err)
		return &LoadError{Source: s.src.String(), Err: err}
	}

	s.data = data
	s.loaded.Store(true)
	s.logger.Info("Loaded job data",
		"source", s.src.String(),
		"rows", data.Len(),
		"columns", data.header.Len(),
		"read", s.tracker.ProgressBytes(),
		"duration", s.tracker.Duration(),
	)
	return nil
}

func (s *Store) load(ctx context.Context) (data *Dataset, err error) {
	s.tracker.Start()
	defer func() {
		s.tracker.Update(err)
		for _, o := range s.observers {
			o.LoadFinished(err)
		}
	}()

	rc, info, err := s.src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	if s.maxSize > 0 && info.Size > s.maxSize {
		return nil, fmt.Errorf("%w: %s > %s", ErrTooLarge, types.Bytes(info.Size), types.Bytes(s.maxSize))
	}

	s.tracker.SetTotal(info.Size)
	for _, o := range s.observers {
		o.LoadStarted(s.src.String(), info.Size)
	}
	s.logger.Debug("Reading job data", "source", s.src.String(), "size", info.Size)

	rw := types.NewReaderWriter(
		types.RWWithIOReader(rc),
		types.RWWithReadLimiter(s.limiter),
		types.RWWithReaderCallback(func(n int64) {
			s.tracker.IncCurrent(n)
			for _, o := range s.observers {
				o.LoadRead(n)
			}
		}),
	)

	var r io.Reader = rw.Reader(ctx)
	if s.maxSize > 0 {
		// One byte past the limit is enough to tell an oversized source apart
		r = io.LimitReader(r, s.maxSize+1)
	}

	data, err = s.parse(r)
	if s.maxSize > 0 && s.tracker.Current() > s.maxSize {
		return nil, fmt.Errorf("%w: more than %s", ErrTooLarge, types.Bytes(s.maxSize))
	}
	return data, err
}

func (s *Store) parse(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = s.comma
	cr.TrimLeadingSpace = s.trimLeadingSpace

	record, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptySource
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	header, err := newHeader(record)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		rows = append(rows, Row{header: header, values: record})
	}

	return &Dataset{header: header, rows: rows}, nil
}

func (s *Store) dataset(ctx context.Context) (*Dataset, error) {
	if err := s.EnsureLoaded(ctx); err != nil {
		return nil, err
	}
	return s.data, nil
}

func (s *Store) column(d *Dataset, column string) (int, error) {
	i, ok := d.header.Lookup(column)
	if !ok {
		return 0, &KeyError{Column: column}
	}
	return i, nil
}

// ListAll returns the whole dataset.
func (s *Store) ListAll(ctx context.Context) (*Dataset, error) {
	return s.dataset(ctx)
}

// Columns returns the column names in header order.
func (s *Store) Columns(ctx context.Context) ([]string, error) {
	d, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}
	return d.Columns(), nil
}

// ListDistinctValues returns every value of column once, in the order the
// values first appear.
func (s *Store) ListDistinctValues(ctx context.Context, column string) ([]string, error) {
	d, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}
	i, err := s.column(d, column)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, row := range d.rows {
		v := row.values[i]
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values, nil
}

// FilterByColumnContains returns the rows whose value at column contains
// needle, ignoring case.
func (s *Store) FilterByColumnContains(ctx context.Context, column, needle string) ([]Row, error) {
	d, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}
	i, err := s.column(d, column)
	if err != nil {
		return nil, err
	}

	needle = strings.ToLower(needle)
	matches := make([]Row, 0)
	for _, row := range d.rows {
		if strings.Contains(strings.ToLower(row.values[i]), needle) {
			matches = append(matches, row)
		}
	}
	return matches, nil
}

// FilterByAnyColumnContains returns the rows where needle occurs anywhere in
// the row's values joined in header order, ignoring case.
func (s *Store) FilterByAnyColumnContains(ctx context.Context, needle string) ([]Row, error) {
	d, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}

	needle = strings.ToLower(needle)
	matches := make([]Row, 0)
	for _, row := range d.rows {
		if strings.Contains(row.text(), needle) {
			matches = append(matches, row)
		}
	}
	return matches, nil
}

// LoadStatus describes the store's load state.
type LoadStatus struct {
	tracker.Snapshot
	Source string `json:"source"`
	Loaded bool   `json:"loaded"`
	Rows   int    `json:"rows"`
}

// Status returns a snapshot of the load state. It never triggers a load.
func (s *Store) Status() LoadStatus {
	st := LoadStatus{
		Snapshot: s.tracker.Snapshot(),
		Source:   s.src.String(),
		Loaded:   s.loaded.Load(),
	}
	if st.Loaded {
		st.Rows = s.data.Len()
	}
	return st
}
