package api

import "io"

// ProgressFunc receives transfer progress as a 0–100 percentage.
type ProgressFunc func(percent int)

// ProgressReader wraps an io.Reader and reports byte-level progress mapped
// to a percentage of the expected total. Callbacks fire only when the
// percentage changes, so a 1 GiB transfer still produces at most 101 calls.
// When total is unknown (<= 0) no callbacks are made.
type ProgressReader struct {
	r     io.Reader
	total int64
	read  int64
	last  int
	fn    ProgressFunc
}

func NewProgressReader(r io.Reader, total int64, fn ProgressFunc) *ProgressReader {
	return &ProgressReader{r: r, total: total, last: -1, fn: fn}
}

func (p *ProgressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.read += int64(n)
		p.report()
	}
	return n, err
}

func (p *ProgressReader) report() {
	if p.fn == nil || p.total <= 0 {
		return
	}
	percent := int(p.read * 100 / p.total)
	if percent > 100 {
		percent = 100
	}
	if percent != p.last {
		p.last = percent
		p.fn(percent)
	}
}
