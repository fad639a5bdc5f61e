package observability

import (
	"time"

	"go.uber.org/zap"
)

// Field constructors re-exported so callers do not import zap directly.

func String(key, val string) zap.Field { return zap.String(key, val) }

func Int(key string, val int) zap.Field { return zap.Int(key, val) }

func Float64(key string, val float64) zap.Field { return zap.Float64(key, val) }

func Duration(key string, val time.Duration) zap.Field { return zap.Duration(key, val) }

func Error(err error) zap.Field { return zap.Error(err) }

func Any(key string, val interface{}) zap.Field { return zap.Any(key, val) }

// Stack records the current goroutine's stack trace.
func Stack(key string) zap.Field { return zap.Stack(key) }
