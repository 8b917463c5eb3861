package route

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// tokenKind doubles as tie-break priority: lower kinds win when two matches
// start at the same offset.
type tokenKind int

const (
	kindHeaderEN tokenKind = iota
	kindHeaderCN
	kindSegmentA
	kindSegmentB
	kindCount
)

func (k tokenKind) String() string {
	switch k {
	case kindHeaderEN:
		return "header-en"
	case kindHeaderCN:
		return "header-cn"
	case kindSegmentA:
		return "segment-a"
	case kindSegmentB:
		return "segment-b"
	default:
		return "unknown"
	}
}

func (k tokenKind) isHeader() bool {
	return k == kindHeaderEN || k == kindHeaderCN
}

// ws matches the whitespace accepted between tokens, including Unicode
// space separators.
const ws = `[\s\x{0b}\x{1c}-\x{1f}\x{85}\p{Z}]`

var patterns = [kindCount]*regexp.Regexp{
	kindHeaderEN: regexp.MustCompile(`(?i)(?P<num>\d+)` + ws + `*route` + ws + `*\d+` + ws + `*date`),
	kindHeaderCN: regexp.MustCompile(`(?P<num>\d+)` + ws + `*号(?:线)?`),
	kindSegmentA: regexp.MustCompile(`(?P<start>\d+)` + ws + `*-` + ws + `*(?P<end>\d+)` + ws + `+(?P<val>\d+)`),
	kindSegmentB: regexp.MustCompile(`(?P<val>\d+)` + ws + `*[（(]` + ws + `*(?P<start>\d+)` + ws + `*-` + ws + `*(?P<end>\d+)` + ws + `*[）)]`),
}

// token is one match produced by the scanner. Fields holds the named
// captures of its pattern.
type token struct {
	kind   tokenKind
	start  int
	end    int
	fields map[string]string
}

// digitFold rewrites every Unicode decimal digit (full-width, Arabic-Indic,
// Devanagari, ...) as its ASCII digit. Nothing else is touched: hyphens and
// keywords must stay ASCII to match.
var digitFold = runes.Map(func(r rune) rune {
	if r < utf8.RuneSelf {
		return r
	}
	if v, ok := digitValue(r); ok {
		return '0' + v
	}
	return r
})

// digitValue returns the value of a Unicode decimal digit. Decimal digits are
// allocated in contiguous runs of ten starting at zero, so a rune's value is
// its offset into its run modulo ten.
func digitValue(r rune) (rune, bool) {
	for _, rng := range unicode.Nd.R16 {
		lo, hi := rune(rng.Lo), rune(rng.Hi)
		if r < lo || r > hi {
			continue
		}
		if rng.Stride != 1 {
			return 0, false
		}
		return (r - lo) % 10, true
	}
	for _, rng := range unicode.Nd.R32 {
		lo, hi := rune(rng.Lo), rune(rng.Hi)
		if r < lo || r > hi {
			continue
		}
		if rng.Stride != 1 {
			return 0, false
		}
		return (r - lo) % 10, true
	}
	return 0, false
}

// normalize maps Unicode decimal digits to ASCII so the patterns' \d matches
// them.
func normalize(text string) string {
	out, _, err := transform.String(digitFold, text)
	if err != nil {
		return text
	}
	return out
}

// scanner walks text left to right, yielding the leftmost match among all
// pattern kinds. Each kind's next match is cached; since no pattern looks
// behind its start, a cached match that still begins at or after the cursor
// is exactly what a fresh search from the cursor would return.
type scanner struct {
	text      string
	cursor    int
	pending   [kindCount]*token
	exhausted [kindCount]bool
}

func newScanner(text string) *scanner {
	return &scanner{text: text}
}

// next returns the next winning token and advances the cursor past it.
func (s *scanner) next() (token, bool) {
	var best *token
	for kind := tokenKind(0); kind < kindCount; kind++ {
		if s.exhausted[kind] {
			continue
		}
		if s.pending[kind] == nil || s.pending[kind].start < s.cursor {
			s.pending[kind] = s.search(kind)
			if s.pending[kind] == nil {
				s.exhausted[kind] = true
				continue
			}
		}
		if best == nil || s.pending[kind].start < best.start {
			best = s.pending[kind]
		}
	}
	if best == nil {
		return token{}, false
	}
	s.cursor = best.end
	return *best, true
}

func (s *scanner) search(kind tokenKind) *token {
	re := patterns[kind]
	loc := re.FindStringSubmatchIndex(s.text[s.cursor:])
	if loc == nil {
		return nil
	}
	tok := &token{
		kind:   kind,
		start:  s.cursor + loc[0],
		end:    s.cursor + loc[1],
		fields: make(map[string]string, 3),
	}
	for i, name := range re.SubexpNames() {
		if name == "" || loc[2*i] < 0 {
			continue
		}
		tok.fields[name] = s.text[s.cursor+loc[2*i] : s.cursor+loc[2*i+1]]
	}
	return tok
}
