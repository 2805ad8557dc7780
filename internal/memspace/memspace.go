// Package memspace models the destination address space a ROM image is
// loaded into, as a set of mapped segments.
package memspace

import (
	"errors"
	"fmt"
)

// Class tags what kind of content a segment holds.
type Class int

const (
	// Code marks a segment as holding executable code.
	Code Class = iota
	// Data marks a segment as holding data.
	Data
)

// String returns the class name.
func (c Class) String() string {
	if c == Data {
		return "DATA"
	}
	return "CODE"
}

var (
	// ErrInvalidBounds is returned if a segment end does not lie above its start.
	ErrInvalidBounds = errors.New("segment end not above segment start")
	// ErrSegmentOverlap is returned if a segment overlaps an already mapped segment.
	ErrSegmentOverlap = errors.New("segment overlaps a mapped segment")
)

// Segment is a mapped address range with backing storage.
type Segment struct {
	Name  string
	Class Class
	Start uint32
	End   uint32 // exclusive

	data []byte
}

// Bytes returns the segment's backing storage. The slice is indexed from the
// segment start, offset 0 is the byte at address Start.
func (s *Segment) Bytes() []byte {
	return s.data
}

// Space is an address space built up from non overlapping segments.
type Space struct {
	// AddressBits is the addressing width of the space.
	AddressBits int

	segments []*Segment
}

// New creates an empty address space with 32 bit addressing.
func New() *Space {
	return &Space{AddressBits: 32}
}

// AddSegment maps [start, end) as a new segment with zeroed backing storage.
func (s *Space) AddSegment(name string, class Class, start, end uint32) (*Segment, error) {
	if end <= start {
		return nil, fmt.Errorf("segment %q at 0x%08X-0x%08X: %w", name, start, end, ErrInvalidBounds)
	}
	for _, seg := range s.segments {
		if start < seg.End && seg.Start < end {
			return nil, fmt.Errorf("segment %q at 0x%08X-0x%08X: %w", name, start, end, ErrSegmentOverlap)
		}
	}

	seg := &Segment{
		Name:  name,
		Class: class,
		Start: start,
		End:   end,
		data:  make([]byte, end-start),
	}
	s.segments = append(s.segments, seg)
	return seg, nil
}

// Segments returns all mapped segments in mapping order.
func (s *Space) Segments() []*Segment {
	return s.segments
}

// SegmentAt returns the segment containing addr, or nil if the address is
// not mapped.
func (s *Space) SegmentAt(addr uint32) *Segment {
	for _, seg := range s.segments {
		if addr >= seg.Start && addr < seg.End {
			return seg
		}
	}
	return nil
}

// Write copies data into the address space starting at addr. Bytes that fall
// outside any mapped segment are discarded. It returns the number of bytes
// that ended up in mapped storage.
func (s *Space) Write(addr uint32, data []byte) int {
	lo := uint64(addr)
	hi := lo + uint64(len(data))

	written := 0
	for _, seg := range s.segments {
		cutLo := max(lo, uint64(seg.Start))
		cutHi := min(hi, uint64(seg.End))
		if cutLo >= cutHi {
			continue
		}
		written += copy(seg.data[cutLo-uint64(seg.Start):cutHi-uint64(seg.Start)],
			data[cutLo-lo:cutHi-lo])
	}
	return written
}
