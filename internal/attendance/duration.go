package attendance

import (
	"fmt"
	"time"
)

// Duration is the elapsed time between an in and an out clock reading,
// truncated to whole minutes.
type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// String renders the display form, e.g. "1h 30m".
func (d Duration) String() string {
	return fmt.Sprintf("%dh %dm", d.Hours, d.Minutes)
}

// CalculateDuration computes the wall-clock time between two HH:mm:ss
// strings on the same nominal day. An out time numerically before the
// in time clamps to zero; this system never guards against a check-out
// crossing midnight, so the negative case is defined away rather than
// reported. Malformed input means the strings did not come from this
// system and is returned as an error.
func CalculateDuration(inTime, outTime string) (Duration, error) {
	in, err := time.Parse("15:04:05", inTime)
	if err != nil {
		return Duration{}, fmt.Errorf("parse in time: %w", err)
	}
	out, err := time.Parse("15:04:05", outTime)
	if err != nil {
		return Duration{}, fmt.Errorf("parse out time: %w", err)
	}

	diff := out.Sub(in)
	if diff < 0 {
		return Duration{}, nil
	}
	return Duration{
		Hours:   int(diff / time.Hour),
		Minutes: int(diff % time.Hour / time.Minute),
	}, nil
}
