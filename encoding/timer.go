package encoding

import "github.com/optolink/bridge/optoerr"

// TimeOfDay is an hour/minute pair; minute is always a multiple of 10 on the
// wire (3 bits of resolution), enforced by Timer.Validate.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Cycle is one on/off switching interval of a cycle timer.
type Cycle struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Timer packs up to four Cycles into 8 bytes, one byte per TimeOfDay: the
// top 5 bits hold the hour, the bottom 3 hold minute/10. Unused trailing
// cycles are filled with 0xFF.
type Timer struct{}

func NewTimer() *Timer { return &Timer{} }

func (e *Timer) Size() int { return 8 }

func (e *Timer) Validate(v any) error {
	cycles, ok := v.([]Cycle)
	if !ok {
		return optoerr.New(optoerr.KindEncoding, "[]Cycle expected")
	}
	if len(cycles) > 4 {
		return optoerr.New(optoerr.KindEncoding, "only 0 to 4 switching times supported")
	}
	for _, c := range cycles {
		for _, t := range []TimeOfDay{c.Start, c.End} {
			if t.Minute%10 != 0 {
				return optoerr.New(optoerr.KindEncoding, "minute must be a multiple of 10")
			}
			if !validHourMinute(t.Hour, t.Minute) {
				return optoerr.New(optoerr.KindEncoding, "invalid hour or minute given for a cycle timer")
			}
		}
	}
	return nil
}

func validHourMinute(hour, minute int) bool {
	if minute < 0 || minute >= 60 {
		return false
	}
	if hour < 0 || hour > 24 {
		return false
	}
	if hour == 24 && minute != 0 {
		return false
	}
	return true
}

func (e *Timer) Serialize(v any) ([]byte, error) {
	if err := e.Validate(v); err != nil {
		return nil, err
	}
	cycles := v.([]Cycle)
	out := make([]byte, 0, 8)
	for _, c := range cycles {
		out = append(out, packTimeOfDay(c.Start), packTimeOfDay(c.End))
	}
	for len(out) < 8 {
		out = append(out, 0xFF)
	}
	return out, nil
}

func packTimeOfDay(t TimeOfDay) byte {
	return byte(t.Hour<<3 | t.Minute/10)
}

func (e *Timer) Deserialize(data []byte) (any, error) {
	if len(data) != 8 {
		return nil, optoerr.New(optoerr.KindDecoding, "expected 8 bytes, got %d", len(data))
	}
	firstUndefined := len(data)
	for i, b := range data {
		if b == 0xFF {
			firstUndefined = i
			break
		}
	}
	if firstUndefined%2 != 0 {
		return nil, optoerr.New(optoerr.KindDecoding, "invalid value received for a cycle timer")
	}
	for _, b := range data[firstUndefined:] {
		if b != 0xFF {
			return nil, optoerr.New(optoerr.KindDecoding, "invalid value received for a cycle timer")
		}
	}
	times := make([]TimeOfDay, 0, firstUndefined)
	for _, b := range data[:firstUndefined] {
		hour := int(b >> 3)
		minute := int(b&7) * 10
		if !validHourMinute(hour, minute) {
			return nil, optoerr.New(optoerr.KindDecoding, "invalid hour or minute given for a cycle timer")
		}
		times = append(times, TimeOfDay{Hour: hour, Minute: minute})
	}
	cycles := make([]Cycle, 0, len(times)/2)
	for i := 0; i < len(times); i += 2 {
		cycles = append(cycles, Cycle{Start: times[i], End: times[i+1]})
	}
	return cycles, nil
}
