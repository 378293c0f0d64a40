package state

import "time"

// Reliability is the reliability QoS policy kind of an endpoint or topic.
type Reliability int

const (
	BestEffort Reliability = iota
	Reliable
)

// String returns the DDS name of the policy kind.
func (r Reliability) String() string {
	switch r {
	case BestEffort:
		return "best-effort"
	case Reliable:
		return "reliable"
	default:
		return "unknown"
	}
}

// Durability is the durability QoS policy kind of an endpoint or topic.
type Durability int

const (
	Volatile Durability = iota
	TransientLocal
	Transient
	Persistent
)

// String returns the DDS name of the policy kind.
func (d Durability) String() string {
	switch d {
	case Volatile:
		return "volatile"
	case TransientLocal:
		return "transient-local"
	case Transient:
		return "transient"
	case Persistent:
		return "persistent"
	default:
		return "unknown"
	}
}

// ParseReliability maps a policy name to its kind.
func ParseReliability(s string) (Reliability, bool) {
	switch s {
	case "best-effort", "best_effort":
		return BestEffort, true
	case "reliable":
		return Reliable, true
	}
	return BestEffort, false
}

// ParseDurability maps a policy name to its kind.
func ParseDurability(s string) (Durability, bool) {
	switch s {
	case "volatile":
		return Volatile, true
	case "transient-local", "transient_local":
		return TransientLocal, true
	case "transient":
		return Transient, true
	case "persistent":
		return Persistent, true
	}
	return Volatile, false
}

// Writer is a discovered data writer.
type Writer struct {
	GUID        GUID
	TopicName   string
	TypeName    string
	Reliability Reliability
	Durability  Durability
	LastSeen    time.Time
}

// Reader is a discovered data reader.
type Reader struct {
	GUID        GUID
	TopicName   string
	TypeName    string
	Reliability Reliability
	Durability  Durability
	LastSeen    time.Time
}

// Topic is a discovered topic, keyed by name.
type Topic struct {
	Name        string
	TypeName    string
	Reliability Reliability
	Durability  Durability
}

// Abnormality is one observed irregularity. Nil WriterID, ReaderID or
// TopicName mean the field does not apply to this report.
type Abnormality struct {
	// Seq is assigned by the store in insertion order.
	Seq       uint64
	When      time.Time
	WriterID  *GUID
	ReaderID  *GUID
	TopicName *string
	Desc      string
}

// Snapshot is an owned copy of the store contents taken under one lock
// acquisition. Slices are in no particular order.
type Snapshot struct {
	Writers       []Writer
	Readers       []Reader
	Topics        []Topic
	Abnormalities []Abnormality

	// TakenAt is when the copy was made.
	TakenAt time.Time
}
