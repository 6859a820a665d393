package backend

import "io"

// countingReader reports cumulative bytes read from the wrapped reader. The
// HTTP transport pulls from it while streaming the request body, which makes
// the report calls track actual upload progress.
type countingReader struct {
	reader io.Reader
	total  int64
	sent   int64
	report func(sent, total int64)
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	if n > 0 {
		c.sent += int64(n)
		c.report(c.sent, c.total)
	}
	return n, err
}
