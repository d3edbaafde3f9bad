package processors

import (
	"fmt"

	"github.com/username/edavkifolio/src/logger"
)

// WarningCollector accumulates non-fatal data-quality findings (zero-unit
// trades, missing company metadata) so they can be surfaced once, together,
// at the end of the run. Warnings never abort; the corresponding record is
// still emitted or flagged, not dropped silently.
type WarningCollector struct {
	warnings []string
}

func NewWarningCollector() *WarningCollector {
	return &WarningCollector{}
}

func (c *WarningCollector) Addf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.warnings = append(c.warnings, msg)
	if logger.L != nil {
		logger.L.Warn(msg)
	}
}

func (c *WarningCollector) Warnings() []string {
	return c.warnings
}

func (c *WarningCollector) Empty() bool {
	return len(c.warnings) == 0
}
