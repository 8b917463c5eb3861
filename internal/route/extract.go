package route

import (
	"io"
	"strconv"

	"github.com/sirupsen/logrus"
)

var discardLog = func() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(logger)
}()

// Extractor turns free-form text into sections of segments.
type Extractor struct {
	log *logrus.Entry
}

// NewExtractor creates an extractor. A nil logger disables logging.
func NewExtractor(log *logrus.Entry) *Extractor {
	if log == nil {
		log = discardLog
	}
	return &Extractor{log: log.WithField("component", "extractor")}
}

// Extract scans text with a non-logging extractor.
func Extract(text string) *Result {
	return NewExtractor(nil).Extract(text)
}

// Extract scans text once, assigning every segment to the section named by
// the nearest preceding header. Segments found before any header, or after a
// header whose number could not be parsed, are dropped. Malformed input is
// skipped, never reported.
func (e *Extractor) Extract(text string) *Result {
	res := newResult()
	sc := newScanner(normalize(text))

	var current *Section
	for {
		tok, ok := sc.next()
		if !ok {
			break
		}

		if tok.kind.isHeader() {
			num, err := strconv.Atoi(tok.fields["num"])
			if err != nil {
				e.log.WithFields(logrus.Fields{"offset": tok.start, "kind": tok.kind.String()}).
					Debugf("unparseable header number %q, clearing section", tok.fields["num"])
				current = nil
				continue
			}
			sec, seen := res.Sections[num]
			if !seen {
				sec = &Section{Number: num}
				res.Sections[num] = sec
				res.Order = append(res.Order, num)
			}
			current = sec
			continue
		}

		if current == nil {
			res.Discarded++
			e.log.WithField("offset", tok.start).Debug("segment outside any section discarded")
			continue
		}

		seg, ok := parseSegment(tok)
		if !ok {
			res.Discarded++
			e.log.WithField("offset", tok.start).Debug("segment with unparseable number discarded")
			continue
		}
		current.Segments = append(current.Segments, seg)
	}

	e.log.WithFields(logrus.Fields{
		"sections":  len(res.Order),
		"discarded": res.Discarded,
	}).Info("extraction finished")
	return res
}

func parseSegment(tok token) (Segment, bool) {
	start, err := strconv.Atoi(tok.fields["start"])
	if err != nil {
		return Segment{}, false
	}
	end, err := strconv.Atoi(tok.fields["end"])
	if err != nil {
		return Segment{}, false
	}
	val, err := strconv.Atoi(tok.fields["val"])
	if err != nil {
		return Segment{}, false
	}
	return Segment{Start: start, End: end, Value: val}, true
}
