package ua

import (
	"time"
)

// DateTime is the number of 100 nanosecond intervals since 1601-01-01 UTC.
type DateTime int64

// offset between 1601-01-01 and 1970-01-01 in 100 ns ticks
const unixEpochTicks = 116444736000000000

// NewDateTime converts a time.Time.
func NewDateTime(t time.Time) DateTime {
	if t.IsZero() {
		return 0
	}
	return DateTime(t.UnixNano()/100 + unixEpochTicks)
}

// Time converts the DateTime into a time.Time.
func (d DateTime) Time() time.Time {
	if d == 0 {
		return time.Time{}
	}
	ticks := int64(d) - unixEpochTicks
	return time.Unix(0, ticks*100).UTC()
}

func (d DateTime) String() string {
	return d.Time().Format(time.RFC3339Nano)
}

// XMLElement is an XML fragment carried as text.
type XMLElement string

// TimeString is a time formatted as text by the server.
type TimeString string

// ContentMask is a UADP network message content mask.
type ContentMask uint32

// SemanticChange reports a change of the type of a node.
type SemanticChange struct {
	Affected     NodeID
	AffectedType NodeID
}

// XV is a sample with a position on the x axis.
type XV struct {
	X     float64
	Value float32
}

// ElementOperand references an element of a content filter.
type ElementOperand struct {
	Index uint32
}
