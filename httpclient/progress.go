package httpclient

import "io"

// progressReader wraps a request body reader and reports upload progress as
// integer percentages. The final 100 is reported when the reader drains.
type progressReader struct {
	r        io.Reader
	total    int64
	read     int64
	lastPct  int
	callback ProgressFunc
}

func newProgressReader(r io.Reader, total int64, cb ProgressFunc) *progressReader {
	return &progressReader{r: r, total: total, lastPct: -1, callback: cb}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.report()
	}
	if err == io.EOF && p.total > 0 {
		p.emit(100)
	}
	return n, err
}

func (p *progressReader) report() {
	if p.total <= 0 {
		return
	}
	pct := int(p.read * 100 / p.total)
	if pct > 100 {
		pct = 100
	}
	p.emit(pct)
}

func (p *progressReader) emit(pct int) {
	if p.callback == nil || pct == p.lastPct {
		return
	}
	p.lastPct = pct
	p.callback(pct)
}
