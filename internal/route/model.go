package route

import (
	"strconv"
	"strings"
)

// Segment is an interval start-end annotated with a value.
type Segment struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
	Value int `json:"value" yaml:"value"`
}

// String renders the segment as start-end(value).
func (s Segment) String() string {
	var b strings.Builder
	s.writeTo(&b)
	return b.String()
}

func (s Segment) writeTo(b *strings.Builder) {
	b.WriteString(strconv.Itoa(s.Start))
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(s.End))
	b.WriteByte('(')
	b.WriteString(strconv.Itoa(s.Value))
	b.WriteByte(')')
}

// Section holds the segments recorded under one header number, in the order
// they were found.
type Section struct {
	Number   int       `json:"number" yaml:"number"`
	Segments []Segment `json:"segments" yaml:"segments"`
}

// Empty reports whether the section never received a segment.
func (s *Section) Empty() bool {
	return s == nil || len(s.Segments) == 0
}

// Result is the outcome of a single extraction pass.
type Result struct {
	Sections map[int]*Section
	// Order lists section numbers by first appearance.
	Order []int
	// Discarded counts segments seen while no section was active.
	Discarded int
}

func newResult() *Result {
	return &Result{Sections: make(map[int]*Section)}
}

// Section looks up a section by number.
func (r *Result) Section(number int) (*Section, bool) {
	if r == nil {
		return nil, false
	}
	sec, ok := r.Sections[number]
	return sec, ok
}

// HasData reports whether at least one section holds a segment.
func (r *Result) HasData() bool {
	if r == nil {
		return false
	}
	for _, sec := range r.Sections {
		if !sec.Empty() {
			return true
		}
	}
	return false
}

// Document is the serialisable view of a Result, sections listed by first
// appearance.
type Document struct {
	Order     []int     `json:"order" yaml:"order"`
	Sections  []Section `json:"sections" yaml:"sections"`
	Discarded int       `json:"discarded" yaml:"discarded"`
}

// Document converts the result into its serialisable form.
func (r *Result) Document() Document {
	doc := Document{
		Order:    []int{},
		Sections: []Section{},
	}
	if r == nil {
		return doc
	}
	doc.Discarded = r.Discarded
	for _, num := range r.Order {
		doc.Order = append(doc.Order, num)
		sec := r.Sections[num]
		segs := make([]Segment, 0, len(sec.Segments))
		segs = append(segs, sec.Segments...)
		doc.Sections = append(doc.Sections, Section{Number: num, Segments: segs})
	}
	return doc
}
