package types

import (
	"context"
	"io"
)

type RWCallback func(n int64)
type RWOption func(*ReaderWriter)

func RWWithReadLimiter(limiter *RateLimiter) RWOption {
	return func(r *ReaderWriter) {
		r.readLimiter = limiter
	}
}

func RWWithIOReader(reader io.Reader) RWOption {
	return func(r *ReaderWriter) {
		r.reader = reader
	}
}

func RWWithReaderCallback(callback RWCallback) RWOption {
	return func(r *ReaderWriter) {
		r.readerCallback = callback
	}
}

type ReaderFunc func(p []byte) (int, error)

func (f ReaderFunc) Read(p []byte) (int, error) { return f(p) }

// ReaderWriter wraps an io.Reader and allows for context cancellation,
// rate limiting and callbacks.
//
// If a callback is provided, it is triggered after each read.
// NOTE: This is a hot path so don't block in the callback.
type ReaderWriter struct {
	reader         io.Reader
	readLimiter    *RateLimiter
	readerCallback RWCallback
}

func DefaultReaderWriter() *ReaderWriter {
	return &ReaderWriter{
		readLimiter: UnlimitedRateLimiter(),
	}
}

// NewReaderWriter creates a new ReaderWriter.
func NewReaderWriter(opts ...RWOption) *ReaderWriter {
	r := DefaultReaderWriter()
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Reader creates a new io.Reader that wraps the underlying reader.
func (rw *ReaderWriter) Reader(ctx context.Context) io.Reader {
	return ReaderFunc(func(p []byte) (int, error) {
		return rw.read(ctx, p)
	})
}

// ReadCloser wraps the underlying reader and closes it on Close.
func (rw *ReaderWriter) ReadCloser(ctx context.Context) io.ReadCloser {
	return readCloser{Reader: rw.Reader(ctx), close: rw.CloseReader}
}

// CloseReader closes the underlying reader.
func (rw *ReaderWriter) CloseReader() error {
	if closer, ok := rw.reader.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// read reads data from the underlying reader.
// Applies rate limiting and respects context cancellation.
// Triggers the callback after reading the data if provided.
func (rw *ReaderWriter) read(ctx context.Context, p []byte) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	if !rw.readLimiter.Unlimited() {
		p = p[:rw.readLimiter.clamp(len(p))]
		if err := rw.readLimiter.WaitN(ctx, len(p)); err != nil {
			return 0, err
		}
	}

	n, err := rw.reader.Read(p)
	if n > 0 && rw.readerCallback != nil {
		rw.readerCallback(int64(n))
	}
	return n, err
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error { return r.close() }
