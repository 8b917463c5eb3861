package route

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Mode selects the order in which sections are rendered.
type Mode string

const (
	// ModeNumeric renders sections in ascending number order.
	ModeNumeric Mode = "numeric"
	// ModeEncounter renders sections in the order their headers first appeared.
	ModeEncounter Mode = "encounter"

	DefaultMode = ModeNumeric
)

// Modes lists every supported mode.
func Modes() []Mode {
	return []Mode{ModeNumeric, ModeEncounter}
}

// ParseMode resolves a mode name. An empty name yields DefaultMode.
func ParseMode(name string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case "":
		return DefaultMode, nil
	case ModeNumeric:
		return ModeNumeric, nil
	case ModeEncounter:
		return ModeEncounter, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected numeric or encounter)", name)
	}
}

// Range is an inclusive section number range. Lo above Hi selects nothing.
type Range struct {
	Lo int `json:"lo" yaml:"lo"`
	Hi int `json:"hi" yaml:"hi"`
}

// DefaultRange returns the range 20 to 31.
func DefaultRange() Range {
	return Range{Lo: 20, Hi: 31}
}

// Contains reports whether n lies within the range.
func (r Range) Contains(n int) bool {
	return n >= r.Lo && n <= r.Hi
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Lo, r.Hi)
}

// Render writes one block per non-empty section in range. Each block is a
// newline followed by the section's segments as start-end(value), comma
// separated. Any mode other than ModeEncounter renders numerically.
func Render(res *Result, r Range, mode Mode) string {
	if res == nil {
		return ""
	}
	var b strings.Builder
	for _, num := range candidates(res, r, mode) {
		sec := res.Sections[num]
		if sec.Empty() {
			continue
		}
		b.WriteByte('\n')
		for i, seg := range sec.Segments {
			if i > 0 {
				b.WriteByte(',')
			}
			seg.writeTo(&b)
		}
	}
	return b.String()
}

// candidates lists the section numbers to examine. Numbers in the numeric
// range that were never extracted would render nothing, so only extracted
// numbers are walked.
func candidates(res *Result, r Range, mode Mode) []int {
	var nums []int
	if mode == ModeEncounter {
		for _, num := range res.Order {
			if r.Contains(num) {
				nums = append(nums, num)
			}
		}
		return nums
	}
	for _, num := range slices.Sorted(maps.Keys(res.Sections)) {
		if r.Contains(num) {
			nums = append(nums, num)
		}
	}
	return nums
}

// Format extracts sections from text and renders them.
func Format(text string, mode Mode, r Range) string {
	return Render(Extract(text), r, mode)
}
