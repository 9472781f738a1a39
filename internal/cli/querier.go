package cli

import (
	"context"
	"strings"

	"techjobs/internal/store"
)

// AllColumns selects every column in list and search commands.
const AllColumns = "all"

// Job is one listing keyed by column name.
type Job map[string]string

// Querier answers the console's questions, either from a local store or a
// remote daemon.
type Querier interface {
	Columns(ctx context.Context) ([]string, error)
	ListAll(ctx context.Context) ([]Job, error)
	DistinctValues(ctx context.Context, column string) ([]string, error)
	Search(ctx context.Context, column, term string) ([]Job, error)
}

// LocalQuerier serves queries from an in-process store
type LocalQuerier struct {
	store *store.Store
}

func NewLocalQuerier(s *store.Store) *LocalQuerier {
	return &LocalQuerier{store: s}
}

func (q *LocalQuerier) Columns(ctx context.Context) ([]string, error) {
	return q.store.Columns(ctx)
}

func (q *LocalQuerier) ListAll(ctx context.Context) ([]Job, error) {
	data, err := q.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toJobs(data.Rows()), nil
}

func (q *LocalQuerier) DistinctValues(ctx context.Context, column string) ([]string, error) {
	return q.store.ListDistinctValues(ctx, column)
}

func (q *LocalQuerier) Search(ctx context.Context, column, term string) ([]Job, error) {
	var (
		rows []store.Row
		err  error
	)
	if column == "" || strings.EqualFold(column, AllColumns) {
		rows, err = q.store.FilterByAnyColumnContains(ctx, term)
	} else {
		rows, err = q.store.FilterByColumnContains(ctx, column, term)
	}
	if err != nil {
		return nil, err
	}
	return toJobs(rows), nil
}

func toJobs(rows []store.Row) []Job {
	jobs := make([]Job, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, Job(row.Map()))
	}
	return jobs
}
