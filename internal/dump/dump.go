// Package dump implements the save-state walker shared by every emulator
// component. A single State cursor is driven over each component's mutable
// fields in a fixed order; that order is the save-state format.
package dump

import "encoding/binary"

// Mode selects what a State pass does with each field it visits.
type Mode int

const (
	// Measure advances the cursor without touching memory, yielding the
	// total state size.
	Measure Mode = iota
	// Write copies fields into the buffer.
	Write
	// Read copies the buffer back into fields.
	Read
)

// State is the cursor for one serialization pass. All primitives are
// stored little-endian at native width.
type State struct {
	mode   Mode
	buffer []byte
	offset int
}

// NewState starts a pass in the given mode. The buffer may be nil when
// measuring.
func NewState(mode Mode, buffer []byte) *State {
	return &State{mode: mode, buffer: buffer}
}

// Offset returns the number of bytes visited so far.
func (s *State) Offset() int {
	return s.offset
}

// Mode returns the mode this pass runs in.
func (s *State) Mode() Mode {
	return s.mode
}

// Uint8 visits a single byte field.
func (s *State) Uint8(v *uint8) {
	switch s.mode {
	case Write:
		s.buffer[s.offset] = *v
	case Read:
		*v = s.buffer[s.offset]
	}
	s.offset++
}

// Uint16 visits a 16-bit field.
func (s *State) Uint16(v *uint16) {
	switch s.mode {
	case Write:
		binary.LittleEndian.PutUint16(s.buffer[s.offset:], *v)
	case Read:
		*v = binary.LittleEndian.Uint16(s.buffer[s.offset:])
	}
	s.offset += 2
}

// Uint32 visits a 32-bit field.
func (s *State) Uint32(v *uint32) {
	switch s.mode {
	case Write:
		binary.LittleEndian.PutUint32(s.buffer[s.offset:], *v)
	case Read:
		*v = binary.LittleEndian.Uint32(s.buffer[s.offset:])
	}
	s.offset += 4
}

// Uint64 visits a 64-bit field.
func (s *State) Uint64(v *uint64) {
	switch s.mode {
	case Write:
		binary.LittleEndian.PutUint64(s.buffer[s.offset:], *v)
	case Read:
		*v = binary.LittleEndian.Uint64(s.buffer[s.offset:])
	}
	s.offset += 8
}

// Bool visits a boolean field, stored as one byte (0 or 1).
func (s *State) Bool(v *bool) {
	switch s.mode {
	case Write:
		if *v {
			s.buffer[s.offset] = 1
		} else {
			s.buffer[s.offset] = 0
		}
	case Read:
		*v = s.buffer[s.offset] != 0
	}
	s.offset++
}

// Int visits an int field at 64-bit width so the format does not depend
// on the host word size.
func (s *State) Int(v *int) {
	switch s.mode {
	case Write:
		binary.LittleEndian.PutUint64(s.buffer[s.offset:], uint64(int64(*v)))
	case Read:
		*v = int(int64(binary.LittleEndian.Uint64(s.buffer[s.offset:])))
	}
	s.offset += 8
}

// Bytes visits a fixed-size byte region.
func (s *State) Bytes(v []byte) {
	switch s.mode {
	case Write:
		copy(s.buffer[s.offset:], v)
	case Read:
		copy(v, s.buffer[s.offset:s.offset+len(v)])
	}
	s.offset += len(v)
}
