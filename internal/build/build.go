package build

import "fmt"

// Overridden at build time through -ldflags.
var (
	ShortVersion = "0.0.0"
	GitRef       = "unknown"
)

var LongVersion = fmt.Sprintf("%s (%s)", ShortVersion, GitRef)
