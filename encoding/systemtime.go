package encoding

import (
	"time"

	"github.com/optolink/bridge/optoerr"
)

// SystemTime packs a time.Time into the device's 8-byte packed-BCD
// timestamp: century, year-in-century, month, day, weekday (Mon=1..Sun=7,
// stored mod 7), hour, minute, second.
type SystemTime struct{}

func NewSystemTime() *SystemTime { return &SystemTime{} }

func (e *SystemTime) Size() int { return 8 }

func (e *SystemTime) Validate(v any) error {
	if _, ok := v.(time.Time); !ok {
		return optoerr.New(optoerr.KindEncoding, "time.Time expected")
	}
	return nil
}

func (e *SystemTime) Serialize(v any) ([]byte, error) {
	if err := e.Validate(v); err != nil {
		return nil, err
	}
	t := v.(time.Time)
	pyWeekday := (int(t.Weekday()) + 6) % 7 // Mon=0..Sun=6, matching Python's date.weekday()
	weekday := (pyWeekday + 1) % 7
	vals := [8]int{
		int(t.Year()) / 100,
		int(t.Year()) % 100,
		int(t.Month()),
		t.Day(),
		weekday,
		t.Hour(),
		t.Minute(),
		t.Second(),
	}
	out := make([]byte, 8)
	for i, b := range vals {
		out[i] = byte(b/10*6 + b)
	}
	return out, nil
}

func (e *SystemTime) Deserialize(data []byte) (any, error) {
	if len(data) != 8 {
		return nil, optoerr.New(optoerr.KindDecoding, "expected 8 bytes, got %d", len(data))
	}
	c := make([]int, 8)
	for i, b := range data {
		c[i] = int(b) - int(b)/16*6
	}
	return time.Date(c[0]*100+c[1], time.Month(c[2]), c[3], c[5], c[6], c[7], 0, time.Local), nil
}
