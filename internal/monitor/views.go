package monitor

import (
	"strconv"
	"time"

	"github.com/ddstop/ddstop/internal/state"
)

// TimestampFormat renders abnormality times: RFC 3339, fixed milliseconds, UTC.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// lastSeenFormat renders endpoint activity times.
const lastSeenFormat = "15:04:05"

// endpoint is the shared shape of writers and readers.
type endpoint struct {
	GUID        state.GUID
	TopicName   string
	TypeName    string
	Reliability state.Reliability
	Durability  state.Durability
	LastSeen    time.Time
}

var endpointColumns = []Column[endpoint]{
	{Title: "guid", Cell: func(e endpoint) string { return e.GUID.String() }},
	{Title: "topic", Cell: func(e endpoint) string { return e.TopicName }},
	{Title: "type", Cell: func(e endpoint) string { return e.TypeName }},
	{Title: "reliability", Cell: func(e endpoint) string { return e.Reliability.String() }},
	{Title: "durability", Cell: func(e endpoint) string { return e.Durability.String() }},
	{Title: "last seen", Cell: func(e endpoint) string { return formatLastSeen(e.LastSeen) }},
}

func endpointLess(a, b endpoint) bool { return a.GUID.Less(b.GUID) }

// newWritersView lists writers ordered by GUID.
func newWritersView(pageSize int) *TableView[endpoint] {
	return NewTableView(TabWriters.Title(), endpointColumns, func(s state.Snapshot) []endpoint {
		out := make([]endpoint, len(s.Writers))
		for i, w := range s.Writers {
			out[i] = endpoint(w)
		}
		return out
	}, endpointLess, pageSize)
}

// newReadersView lists readers ordered by GUID.
func newReadersView(pageSize int) *TableView[endpoint] {
	return NewTableView(TabReader.Title(), endpointColumns, func(s state.Snapshot) []endpoint {
		out := make([]endpoint, len(s.Readers))
		for i, r := range s.Readers {
			out[i] = endpoint(r)
		}
		return out
	}, endpointLess, pageSize)
}

// topicRow is a topic with its endpoint counts.
type topicRow struct {
	state.Topic
	Writers int
	Readers int
}

var topicColumns = []Column[topicRow]{
	{Title: "name", Cell: func(t topicRow) string { return t.Name }},
	{Title: "type", Cell: func(t topicRow) string { return t.TypeName }},
	{Title: "writers", Cell: func(t topicRow) string { return strconv.Itoa(t.Writers) }},
	{Title: "readers", Cell: func(t topicRow) string { return strconv.Itoa(t.Readers) }},
	{Title: "reliability", Cell: func(t topicRow) string { return t.Reliability.String() }},
	{Title: "durability", Cell: func(t topicRow) string { return t.Durability.String() }},
}

// newTopicsView lists topics by name with writer and reader counts joined on
// topic name.
func newTopicsView(pageSize int) *TableView[topicRow] {
	return NewTableView(TabTopics.Title(), topicColumns, topicRows,
		func(a, b topicRow) bool { return a.Name < b.Name }, pageSize)
}

func topicRows(s state.Snapshot) []topicRow {
	writers := make(map[string]int)
	for _, w := range s.Writers {
		writers[w.TopicName]++
	}
	readers := make(map[string]int)
	for _, r := range s.Readers {
		readers[r.TopicName]++
	}

	out := make([]topicRow, len(s.Topics))
	for i, t := range s.Topics {
		out[i] = topicRow{Topic: t, Writers: writers[t.Name], Readers: readers[t.Name]}
	}
	return out
}

var abnormalityColumns = []Column[state.Abnormality]{
	{Title: "when", Cell: func(a state.Abnormality) string { return a.When.UTC().Format(TimestampFormat) }},
	{Title: "writer", Cell: func(a state.Abnormality) string { return optionalGUID(a.WriterID) }},
	{Title: "reader", Cell: func(a state.Abnormality) string { return optionalGUID(a.ReaderID) }},
	{Title: "topic", Cell: func(a state.Abnormality) string { return optionalString(a.TopicName) }},
	{Title: "desc", Cell: func(a state.Abnormality) string { return a.Desc }},
}

// newAbnormalitiesView lists abnormalities newest first. Records with the
// same time are ordered by descending insertion sequence.
func newAbnormalitiesView(pageSize int) *TableView[state.Abnormality] {
	return NewTableView(TabAbnormalities.Title(), abnormalityColumns,
		func(s state.Snapshot) []state.Abnormality {
			return append([]state.Abnormality(nil), s.Abnormalities...)
		},
		abnormalityLess, pageSize)
}

func abnormalityLess(a, b state.Abnormality) bool {
	if !a.When.Equal(b.When) {
		return a.When.After(b.When)
	}
	return a.Seq > b.Seq
}

func optionalGUID(id *state.GUID) string {
	if id == nil {
		return placeholder
	}
	return id.String()
}

func optionalString(s *string) string {
	if s == nil {
		return placeholder
	}
	return *s
}

func formatLastSeen(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return t.UTC().Format(lastSeenFormat)
}
