package unit

import (
	"time"

	"github.com/optolink/bridge/optoerr"
)

// SystemTime validates a time.Time value and renders it German-locale style
// (dd.mm.yyyy HH:MM:SS).
type SystemTime struct{}

func NewSystemTime() *SystemTime { return &SystemTime{} }

func (u *SystemTime) ID() string { return "system_time" }

func (u *SystemTime) Validate(value any) error {
	if _, ok := value.(time.Time); !ok {
		return optoerr.New(optoerr.KindUnitValidation, "time.Time expected")
	}
	return nil
}

func (u *SystemTime) DisplayString(value any) string {
	t := value.(time.Time)
	return t.Format("02.01.2006 15:04:05")
}
