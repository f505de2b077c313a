// sim/progress.go
package sim

import "github.com/sirupsen/logrus"

// ProgressFunc receives one notification per simulated year. completed is
// the number of years finished so far (including this one) out of total.
// A panic inside the reporter is caught and logged by the engine, never
// propagated as a run failure.
type ProgressFunc func(year, completed, total int)

// LogProgress returns a reporter that logs each simulated year via logrus.
func LogProgress() ProgressFunc {
	return func(year, completed, total int) {
		logrus.Infof("[year %d] simulated %d/%d years", year, completed, total)
	}
}

// notifyProgress invokes the reporter, containing any panic it raises.
func notifyProgress(p ProgressFunc, year, completed, total int) {
	if p == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logrus.Warnf("progress reporter failed for year %d: %v", year, r)
		}
	}()
	p(year, completed, total)
}
