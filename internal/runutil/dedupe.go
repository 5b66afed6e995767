// internal/runutil/dedupe.go
package runutil

import "github.com/snksoft/crc"

// Key identifies a record by CRC-64/ECMA checksum and length.
type Key struct {
	Sum uint64
	Len int
}

// KeyOf returns the Key of a serialized record.
func KeyOf(record string) Key {
	return Key{Sum: crc.CalculateCRC(crc.CRC64ECMA, []byte(record)), Len: len(record)}
}

// Deduper drops records seen within the last Cap distinct ones.
type Deduper struct {
	seen    *LRUSet[Key]
	dropped int
}

// NewDeduper remembers up to capacity records (DefaultCapacity if ≤ 0).
func NewDeduper(capacity int) *Deduper {
	return &Deduper{seen: NewLRUSet[Key](capacity)}
}

// Seen records s and reports whether it was already present.
func (d *Deduper) Seen(s string) bool {
	if d.seen.Add(KeyOf(s)) {
		d.dropped++
		return true
	}
	return false
}

// Dropped counts the duplicates reported by Seen.
func (d *Deduper) Dropped() int { return d.dropped }
