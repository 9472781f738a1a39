package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Console prints query results the way the job search menu always has
type Console struct {
	q   Querier
	out io.Writer
}

func NewConsole(q Querier, out io.Writer) *Console {
	return &Console{q: q, out: out}
}

// List prints every job for "all", otherwise the column's distinct values
// sorted without regard to case.
func (c *Console) List(ctx context.Context, column string) error {
	if strings.EqualFold(column, AllColumns) {
		jobs, err := c.q.ListAll(ctx)
		if err != nil {
			return err
		}
		return c.printJobs(ctx, jobs)
	}

	values, err := c.q.DistinctValues(ctx, column)
	if err != nil {
		return err
	}
	sorted := slices.Clone(values)
	slices.SortStableFunc(sorted, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})

	fmt.Fprintf(c.out, "\n*** All %s Values ***\n", titleCase(column))
	for _, v := range sorted {
		fmt.Fprintln(c.out, v)
	}
	return nil
}

// Search prints the jobs matching term in column, or in any column for "all".
func (c *Console) Search(ctx context.Context, column, term string) error {
	jobs, err := c.q.Search(ctx, column, term)
	if err != nil {
		return err
	}
	return c.printJobs(ctx, jobs)
}

// Columns prints the dataset's column names.
func (c *Console) Columns(ctx context.Context) error {
	columns, err := c.q.Columns(ctx)
	if err != nil {
		return err
	}
	for _, col := range columns {
		fmt.Fprintln(c.out, col)
	}
	return nil
}

func (c *Console) printJobs(ctx context.Context, jobs []Job) error {
	if len(jobs) == 0 {
		fmt.Fprintln(c.out, "No Results")
		return nil
	}

	columns, err := c.q.Columns(ctx)
	if err != nil {
		return err
	}

	for _, job := range jobs {
		fmt.Fprintln(c.out, "\n*****")
		for _, col := range columns {
			fmt.Fprintf(c.out, "%s: %s\n", col, job[col])
		}
		fmt.Fprintln(c.out, "*****")
	}
	return nil
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
