package hexmerge

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
)

const maxLineLength = 1024 * 1024

// Summary describes what a merge run did.
type Summary struct {
	Lines            int // Input lines read
	Passthrough      int // Unparseable lines copied to the output
	DataRecords      int // Data records placed into segments
	OriginalSegments int // Segments found in the input
	MergedSegments   int // Segments written to the output
	Remapped         int // Original segments moved to a new address
}

// Option configures a Merger.
type Option func(*Merger)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Merger) {
		m.logger = logger
	}
}

// Merger regroups the data records of an IntelHex image by their extended
// linear address and writes them back sorted.
type Merger struct {
	logger      *slog.Logger
	others      []Record // Records not owned by any segment, in input order
	eofRecord   *Record  // First end of file record
	startRecord *Record  // Start linear address record
	original    segments // Sealed segments keyed by input address
	current     uint16   // Upper address of the open segment
	open        bool     // Segment open flag
	pending     []Record // Data records of the open segment
	lineNum     uint     // Input line number
}

// NewMerger returns an empty Merger.
func NewMerger(opts ...Option) *Merger {
	m := &Merger{logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	m.Clear()
	return m
}

// Clear drops all collected records.
func (m *Merger) Clear() {
	m.others = []Record{}
	m.eofRecord = nil
	m.startRecord = nil
	m.original = segments{}
	m.current = 0
	m.open = false
	m.pending = []Record{}
	m.lineNum = 0
}

// Add classifies a parsed record.
func (m *Merger) Add(rec Record) {
	switch rec.Type {
	case EOFRecord:
		if m.eofRecord == nil {
			m.eofRecord = &rec
		}
		m.others = append(m.others, rec)
	case StartLinearAddressRecord:
		if m.startRecord != nil {
			m.logger.Warn("start linear address record replaced", "line", m.lineNum, "previous", m.startRecord.Line)
		}
		m.startRecord = &rec
	case ExtendedLinearAddressRecord:
		high, ok := rec.HighAddress()
		if !ok {
			m.logger.Warn("incomplete extended linear address record", "line", m.lineNum, "text", rec.Line)
			m.others = append(m.others, rec)
			return
		}
		m.seal()
		m.current = high
		m.open = true
	case DataRecord:
		if m.open {
			m.pending = append(m.pending, rec)
			return
		}
		m.others = append(m.others, rec)
	default:
		m.others = append(m.others, rec)
	}
}

func (m *Merger) seal() {
	if !m.open {
		return
	}
	m.original.add(m.current, m.pending)
	m.pending = []Record{}
	m.open = false
}

// Merge reads an IntelHex image from r and writes the merged image to w.
// Lines that cannot be parsed are written to w immediately, unchanged.
func (m *Merger) Merge(r io.Reader, w io.Writer) (Summary, error) {
	var sum Summary

	m.Clear()
	bw := bufio.NewWriter(w)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for scanner.Scan() {
		m.lineNum++
		sum.Lines++
		line := scanner.Text()
		rec, err := ParseRecord(line)
		if err != nil {
			m.logger.Warn("passing through unparseable line", "line", m.lineNum, "error", err, "text", line)
			sum.Passthrough++
			writeLine(bw, line)
			continue
		}
		m.Add(rec)
	}
	if err := scanner.Err(); err != nil {
		return sum, fmt.Errorf("read line %d: %w", m.lineNum+1, err)
	}
	if m.open && len(m.pending) > 0 {
		m.seal()
	}

	m.emit(bw, &sum)

	if err := bw.Flush(); err != nil {
		return sum, fmt.Errorf("write output: %w", err)
	}
	return sum, nil
}

func (m *Merger) remap(sum *Summary) segments {
	sum.OriginalSegments = len(m.original)
	m.logger.Info("input read", "segments", len(m.original))

	merged := segments{}
	for _, high := range m.original.keys() {
		recs := m.original[high]
		m.logger.Debug("segment", "address", fmt.Sprintf("0x%04X", high), "records", len(recs))
		newHigh := RemapHigh(high)
		if newHigh != high {
			sum.Remapped++
			m.logger.Info("remapping segment", "from", fmt.Sprintf("0x%04X", high), "to", fmt.Sprintf("0x%04X", newHigh))
		}
		merged.add(newHigh, recs)
	}
	merged.sortRecords()

	sum.MergedSegments = len(merged)
	m.logger.Info("segments merged", "segments", len(merged))
	return merged
}

func (m *Merger) emit(bw *bufio.Writer, sum *Summary) {
	merged := m.remap(sum)

	for _, rec := range m.others {
		if rec.Type != EOFRecord && rec.Type != StartLinearAddressRecord {
			writeLine(bw, rec.Line)
		}
	}

	for _, high := range merged.keys() {
		writeLine(bw, NewExtendedLinearAddress(high))
		for _, rec := range merged[high] {
			writeLine(bw, rec.Line)
			sum.DataRecords++
		}
	}

	if m.startRecord != nil {
		writeLine(bw, m.startRecord.Line)
	}

	if m.eofRecord != nil {
		writeLine(bw, m.eofRecord.Line)
	} else {
		writeLine(bw, EOFLine)
	}
}

// writeLine relies on the sticky error of bufio.Writer, reported by Flush.
func writeLine(bw *bufio.Writer, line string) {
	bw.WriteString(line)
	bw.WriteByte('\n')
}
