package writer

// MemWriter captures blob bytes in memory.
type MemWriter struct {
	Buf []byte
}

// WriteADT stores a copy of buf.
func (w *MemWriter) WriteADT(buf []byte) error {
	w.Buf = append(w.Buf[:0], buf...)
	return nil
}

// Discard accepts a blob and only records its length. It backs dry runs.
type Discard struct {
	N int
}

// WriteADT records len(buf).
func (d *Discard) WriteADT(buf []byte) error {
	d.N = len(buf)
	return nil
}
