package timeslot

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		slot  string
		start int
		end   int
	}{
		{"morning", "8:00 A.M. - 10:00 A.M.", 8 * 60, 10 * 60},
		{"missing trailing dot", "9:00 A.M. - 11:00 A.M", 9 * 60, 11 * 60},
		{"noon is afternoon", "12:00 P.M. - 3:00 P.M.", 12 * 60, 15 * 60},
		{"midnight start", "12:00 A.M. - 1:30 A.M.", 0, 90},
		{"lower case without dots", "1:15 pm - 4:45 pm", 13*60 + 15, 16*60 + 45},
		{"no spaces", "8:00AM-6:00PM", 8 * 60, 18 * 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse(tt.slot)
			require.NoError(t, err)
			assert.Equal(t, tt.start, r.Start)
			assert.Equal(t, tt.end, r.End)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	slots := []string{
		"",
		"whenever",
		"8 - 10",
		"13:00 P.M. - 2:00 P.M.",
		"8:75 A.M. - 10:00 A.M.",
		"10:00 A.M. - 8:00 A.M.",
		"10:00 A.M. - 10:00 A.M.",
	}

	for _, slot := range slots {
		_, err := Parse(slot)
		assert.True(t, errors.Is(err, ErrMalformed), "slot %q", slot)
	}
}

func TestRange_String(t *testing.T) {
	assert.Equal(t, "12:00 A.M. - 12:30 P.M.", Range{Start: 0, End: 12*60 + 30}.String())
	assert.Equal(t, "8:05 A.M. - 10:00 P.M.", Range{Start: 8*60 + 5, End: 22 * 60}.String())
}

func TestIsFullDay(t *testing.T) {
	assert.True(t, IsFullDay(FullDay))
	assert.True(t, IsFullDay("full day"))
	assert.True(t, IsFullDay("8:00 A.M. - 10:00 P.M."))
	assert.True(t, IsFullDay("8:00 am - 10:00 pm"))
	assert.False(t, IsFullDay("8:00 A.M. - 6:00 P.M."))
	assert.False(t, IsFullDay(""))
}

func TestValid(t *testing.T) {
	for _, slot := range Vocabulary() {
		assert.True(t, Valid(slot), "slot %q", slot)
	}
	assert.True(t, Valid("2:00 P.M. - 5:30 P.M."))
	assert.False(t, Valid("   "))
	assert.False(t, Valid("after lunch"))
}

func TestVocabulary_ReturnsCopy(t *testing.T) {
	v := Vocabulary()
	v[0] = "changed"
	assert.Equal(t, "8:00 A.M. - 10:00 A.M.", Vocabulary()[0])
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{"full day against anything", FullDay, "1:00 P.M. - 4:00 P.M.", true},
		{"full day against garbage", "garbage", FullDay, true},
		{"literal full day span", "8:00 A.M. - 10:00 P.M.", "9:00 P.M. - 9:30 P.M.", true},
		{"identical after trimming", " 9:00 A.M. - 11:00 A.M", "9:00 A.M. - 11:00 A.M ", true},
		{"identical garbage", "soon", "soon", true},
		{"partial overlap", "8:00 A.M. - 10:00 A.M.", "9:00 A.M. - 11:00 A.M", true},
		{"containment", "8:00 A.M. - 6:00 P.M.", "1:00 P.M. - 4:00 P.M.", true},
		{"noon overlap", "12:00 P.M. - 3:00 P.M.", "1:00 P.M. - 4:00 P.M.", true},
		{"touching endpoints", "8:00 A.M. - 10:00 A.M.", "10:00 A.M. - 12:00 P.M.", false},
		{"disjoint", "8:00 A.M. - 10:00 A.M.", "1:00 P.M. - 4:00 P.M.", false},
		{"midnight is not noon", "12:00 A.M. - 1:00 A.M.", "12:00 P.M. - 1:00 P.M.", false},
		{"unparsable fails open", "after lunch", "1:00 P.M. - 4:00 P.M.", false},
		{"reversed range fails open", "4:00 P.M. - 1:00 P.M.", "2:00 P.M. - 3:00 P.M.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a), "symmetry")
		})
	}
}

func TestOverlaps_Reflexive(t *testing.T) {
	slots := append(Vocabulary(), "2:00 P.M. - 5:30 P.M.", "not a slot", "")
	for _, s := range slots {
		assert.True(t, Overlaps(s, s), "slot %q", s)
	}
}
