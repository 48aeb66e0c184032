// Package storage owns the volatile state of the service: the set of
// live bubbles and the user directory. Everything lives in process
// memory and is lost on restart; that is by design, there is no
// persistence layer behind these types.
package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// newID builds an identifier of the form <prefix>_<millis>_<suffix>.
// The timestamp plus an 8-char random suffix makes collisions
// negligible without coordination.
func newID(prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), suffix)
}
