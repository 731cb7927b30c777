// README: Wall-clock adapter behind the Clock port.
package clock

import "time"

// System reads the machine clock. It implements domain.Clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }
