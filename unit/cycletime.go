package unit

import (
	"fmt"
	"strings"

	"github.com/optolink/bridge/encoding"
	"github.com/optolink/bridge/optoerr"
)

// CycleTime validates a []encoding.Cycle switching schedule: every time must
// fall on a 10-minute boundary between 00:00 and 24:00, every cycle's end
// must be after its start, and cycles must not overlap.
type CycleTime struct{}

func NewCycleTime() *CycleTime { return &CycleTime{} }

func (u *CycleTime) ID() string { return "timer" }

func (u *CycleTime) Validate(value any) error {
	cycles, ok := value.([]encoding.Cycle)
	if !ok {
		return optoerr.New(optoerr.KindUnitValidation, "[]encoding.Cycle expected")
	}
	for _, c := range cycles {
		for _, t := range []encoding.TimeOfDay{c.Start, c.End} {
			if t.Minute%10 != 0 {
				return optoerr.New(optoerr.KindUnitValidation, "minute must be a multiple of 10")
			}
			if t.Minute < 0 || t.Minute >= 60 || t.Hour < 0 || t.Hour > 24 || (t.Hour == 24 && t.Minute != 0) {
				return optoerr.New(optoerr.KindUnitValidation, "cycle times must be between 00:00 and 24:00")
			}
		}
		if !before(c.Start, c.End) {
			return optoerr.New(optoerr.KindUnitValidation, "cycle end time must be after cycle start time")
		}
	}
	for i := 0; i+1 < len(cycles); i++ {
		if !atOrBefore(cycles[i].End, cycles[i+1].Start) {
			return optoerr.New(optoerr.KindUnitValidation, "cycle times must not overlap")
		}
	}
	return nil
}

func before(a, b encoding.TimeOfDay) bool {
	return a.Hour < b.Hour || (a.Hour == b.Hour && a.Minute < b.Minute)
}

func atOrBefore(a, b encoding.TimeOfDay) bool {
	return a.Hour < b.Hour || (a.Hour == b.Hour && a.Minute <= b.Minute)
}

func (u *CycleTime) DisplayString(value any) string {
	cycles := value.([]encoding.Cycle)
	parts := make([]string, len(cycles))
	show := func(t encoding.TimeOfDay) string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }
	for i, c := range cycles {
		parts[i] = fmt.Sprintf("%s-%s", show(c.Start), show(c.End))
	}
	return strings.Join(parts, " ")
}
