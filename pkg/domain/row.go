package domain

// RowKind discriminates the printable row variants.
type RowKind string

const (
	RowKindHeadline RowKind = "headline"
	RowKindValue    RowKind = "value"
	RowKindTable    RowKind = "table"
)

// Row is one unit of the flattened, printable output of the row
// generator. The sum is sealed: Headline, Value and Table are the only
// variants. No tree structure remains in the output; a document
// renderer consumes the sequence in order.
type Row interface {
	Kind() RowKind
}

// Headline introduces a section (a step, or one replicating instance).
type Headline struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

func (Headline) Kind() RowKind { return RowKindHeadline }

// Value is one label/text pair. GroupStart/GroupEnd tag the first and
// last rows of a replicating-container instance so a renderer can
// visually group them.
type Value struct {
	Label      string `json:"label"`
	Text       string `json:"text"`
	GroupStart bool   `json:"group_start,omitempty"`
	GroupEnd   bool   `json:"group_end,omitempty"`
}

func (Value) Kind() RowKind { return RowKindValue }

// Table is a rendered table input: a header row plus data rows.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

func (Table) Kind() RowKind { return RowKindTable }
