package hexmerge

import (
	"sort"
)

// Helper type for data records sorting operations
type sortByAddress []Record

func (recs sortByAddress) Len() int           { return len(recs) }
func (recs sortByAddress) Swap(i, j int)      { recs[i], recs[j] = recs[j], recs[i] }
func (recs sortByAddress) Less(i, j int) bool { return recs[i].Address < recs[j].Address }

// RemapHigh moves the 0x8000-0x8FFF extended linear address window to
// 0xA000-0xAFFF. Any other value is returned unchanged.
func RemapHigh(high uint16) uint16 {
	if high&0xF000 == 0x8000 {
		return 0xA000 | (high & 0x0FFF)
	}
	return high
}

// segments maps an extended linear address to the data records it governs.
type segments map[uint16][]Record

func (s segments) add(high uint16, recs []Record) {
	s[high] = append(s[high], recs...)
}

func (s segments) keys() []uint16 {
	keys := make([]uint16, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (s segments) sortRecords() {
	for _, recs := range s {
		sort.Stable(sortByAddress(recs))
	}
}
