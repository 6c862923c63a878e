package logging

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// RecoverPanic logs a panic with its stack trace and system info, then
// re-panics. Call it with defer at the top of main and of every goroutine the
// preview host starts.
func RecoverPanic(ctx context.Context) {
	r := recover()
	if r == nil {
		return
	}
	logPanic(ctx, r, debug.Stack())
	panic(r)
}

func logPanic(ctx context.Context, r any, stack []byte) {
	log := FromContext(ctx)
	if log.GetLevel() == zerolog.Disabled {
		fmt.Fprintf(os.Stderr, "PANIC: %v\n%s\n", r, stack)
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Error().
		Str("panic", fmt.Sprint(r)).
		Str("go", runtime.Version()).
		Str("os", runtime.GOOS).
		Str("arch", runtime.GOARCH).
		Uint64("alloc_kb", m.Alloc/1024).
		Uint32("num_gc", m.NumGC).
		Bytes("stack", stack).
		Msg("panic recovered")
}
