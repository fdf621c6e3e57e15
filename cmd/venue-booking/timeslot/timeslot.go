// Package timeslot decides whether two booking slots of the same day collide.
//
// A slot is either one of the fixed labels offered by the booking form, the
// full-day sentinel, or a custom "H:MM A.M. - H:MM P.M." range. Overlaps is
// pure and never fails: a slot that cannot be parsed is treated as colliding
// with nothing.
package timeslot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FullDay is the sentinel label that books a venue for the whole day.
const FullDay = "Full Day (8:00 A.M. - 10:00 P.M.)"

const fullDayMarker = "full day"

var vocabulary = []string{
	"8:00 A.M. - 10:00 A.M.",
	"9:00 A.M. - 11:00 A.M",
	"1:00 P.M. - 4:00 P.M.",
	"12:00 P.M. - 3:00 P.M.",
	"8:00 A.M. - 6:00 P.M.",
	FullDay,
}

// fullDayRange is the literal time span behind the FullDay label.
var fullDayRange = Range{Start: 8 * 60, End: 22 * 60}

var (
	ErrMalformed = errors.New("malformed time slot")

	clockPart = `(\d{1,2}):(\d{2})\s*([AaPp])\.?\s*[Mm]\.?`
	slotRe    = regexp.MustCompile(`^\s*` + clockPart + `\s*-\s*` + clockPart + `\s*$`)
)

// Vocabulary returns the fixed slot labels offered to clubs.
func Vocabulary() []string {
	out := make([]string, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// Range is a half-open interval of minutes since midnight.
type Range struct {
	Start int
	End   int
}

func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && r.End > o.Start
}

func (r Range) String() string {
	return formatClock(r.Start) + " - " + formatClock(r.End)
}

// Parse reads a "<start> - <end>" slot written with 12-hour clock times.
func Parse(slot string) (Range, error) {
	m := slotRe.FindStringSubmatch(slot)
	if m == nil {
		return Range{}, errors.Wrapf(ErrMalformed, "%q", slot)
	}
	start, err := toMinutes(m[1], m[2], m[3])
	if err != nil {
		return Range{}, errors.Wrapf(err, "%q", slot)
	}
	end, err := toMinutes(m[4], m[5], m[6])
	if err != nil {
		return Range{}, errors.Wrapf(err, "%q", slot)
	}
	if end <= start {
		return Range{}, errors.Wrapf(ErrMalformed, "%q ends before it starts", slot)
	}
	return Range{Start: start, End: end}, nil
}

// IsFullDay reports whether slot books the venue for the whole day, either by
// carrying the "Full Day" marker or by spelling out the full-day span.
func IsFullDay(slot string) bool {
	if strings.Contains(strings.ToLower(slot), fullDayMarker) {
		return true
	}
	r, err := Parse(slot)
	return err == nil && r == fullDayRange
}

// Valid reports whether slot is usable for a booking.
func Valid(slot string) bool {
	if strings.TrimSpace(slot) == "" {
		return false
	}
	if IsFullDay(slot) {
		return true
	}
	_, err := Parse(slot)
	return err == nil
}

// Overlaps reports whether two slots of the same day collide.
func Overlaps(a, b string) bool {
	if IsFullDay(a) || IsFullDay(b) {
		return true
	}
	if strings.TrimSpace(a) == strings.TrimSpace(b) {
		return true
	}
	ra, err := Parse(a)
	if err != nil {
		return false
	}
	rb, err := Parse(b)
	if err != nil {
		return false
	}
	return ra.Overlaps(rb)
}

func toMinutes(hh, mm, meridiem string) (int, error) {
	h, err := strconv.Atoi(hh)
	if err != nil || h < 1 || h > 12 {
		return 0, errors.Wrapf(ErrMalformed, "hour %s", hh)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m > 59 {
		return 0, errors.Wrapf(ErrMalformed, "minute %s", mm)
	}
	pm := strings.EqualFold(meridiem, "p")
	switch {
	case h == 12 && !pm:
		h = 0
	case h != 12 && pm:
		h += 12
	}
	return h*60 + m, nil
}

func formatClock(minutes int) string {
	h, m := minutes/60, minutes%60
	meridiem := "A.M."
	if h >= 12 {
		meridiem = "P.M."
	}
	switch {
	case h == 0:
		h = 12
	case h > 12:
		h -= 12
	}
	return fmt.Sprintf("%d:%02d %s", h, m, meridiem)
}
