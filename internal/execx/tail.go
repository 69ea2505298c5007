package execx

// Tail is an io.Writer that keeps only the last max bytes written to it.
type Tail struct {
	buf []byte
	max int
}

func NewTail(maxBytes int) *Tail {
	return &Tail{max: maxBytes}
}

func (t *Tail) Write(p []byte) (int, error) {
	n := len(p)
	if n >= t.max {
		t.buf = append(t.buf[:0], p[n-t.max:]...)
		return n, nil
	}
	if over := len(t.buf) + n - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	t.buf = append(t.buf, p...)
	return n, nil
}

func (t *Tail) String() string { return string(t.buf) }
