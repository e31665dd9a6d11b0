package utils

import (
	"runtime/debug"

	"golang-stock-notifier/pkg/logger"

	"go.uber.org/zap"
)

// GoSafe runs fn in a new goroutine and logs any panic it raises instead of crashing.
func GoSafe(log *logger.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Recovered from panic in goroutine",
					logger.Field("panic", r),
					zap.ByteString("stack", debug.Stack()))
			}
		}()
		fn()
	}()
}
