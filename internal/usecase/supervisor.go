package usecase

import (
	drepo "SpacWatch/internal/domain/repository"
	"SpacWatch/pkg/logger"
)

// RunPanel executes fn on behalf of the named panel and converts a panic
// into the fallback value plus a recorded fault. A single misbehaving
// panel must never take down the others.
func RunPanel[T any](log *logger.Logger, metrics drepo.Metrics, panel string, fallback T, fn func() T) (out T) {
	defer func() {
		if r := recover(); r != nil {
			out = fallback
			if metrics != nil {
				metrics.RecordPanelFault(panel)
			}
			if log != nil {
				log.Error("panel fetch panicked",
					logger.String("panel", panel),
					logger.Any("panic", r))
			}
		}
	}()
	return fn()
}
