package etc

import (
	"github.com/nrednav/cuid2"
)

// NewFreshID returns a collision-resistant identifier for sessions and
// notices.
func NewFreshID() string {
	return cuid2.Generate()
}
