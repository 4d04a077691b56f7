package interval

import (
	"fmt"
	"time"
)

// MaxFieldValue is the largest value a single minutes or seconds field accepts.
// Input is truncated to two digits, so seconds above 59 are possible.
const MaxFieldValue = 99

// Duration is a countdown length in whole minutes and seconds.
type Duration struct {
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// FromTime converts a time span to a normalized Duration (seconds in [0,59]).
// Negative spans and sub-second remainders are dropped.
func FromTime(d time.Duration) Duration {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return Duration{Minutes: total / 60, Seconds: total % 60}
}

// IsZero reports whether no time remains.
func (d Duration) IsZero() bool {
	return !(d.Minutes > 0 || d.Seconds > 0)
}

// Decrement returns the duration one second shorter. When seconds reach 0 a
// minute is borrowed, so {1,0} becomes {0,59}. A zero duration stays zero.
func (d Duration) Decrement() Duration {
	switch {
	case d.Seconds > 0:
		d.Seconds--
	case d.Minutes > 0:
		d.Minutes--
		d.Seconds = 59
	}
	return d
}

// Time returns the duration as a time span.
func (d Duration) Time() time.Duration {
	return time.Duration(d.Minutes)*time.Minute + time.Duration(d.Seconds)*time.Second
}

// String formats the duration as two-digit MM:SS.
func (d Duration) String() string {
	return fmt.Sprintf("%02d:%02d", d.Minutes, d.Seconds)
}
