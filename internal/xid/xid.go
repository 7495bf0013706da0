package xid

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// New returns prefix-<unix millis>-<uuid>. The timestamp keeps ids roughly
// sortable; the uuid keeps ids created in the same millisecond distinct.
func New(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), uuid.NewString())
}
