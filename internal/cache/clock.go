package cache

import "time"

// Clock supplies the current time used to stamp and check entry expiry.
//
// Tests inject a fake clock to move time forward without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
