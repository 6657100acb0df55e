package logging

import (
	"context"

	"github.com/google/uuid"
)

type debugKeyType struct{}

// debugKeyField is the field carrying the debug key of a context in debug mode.
const debugKeyField = "debug_key"

// EnableDebugMode returns a context that turns on CDebug logging. The key is attached to every
// entry logged with the context; an empty key is replaced by a short random one.
func EnableDebugMode(ctx context.Context, key string) context.Context {
	if key == "" {
		key = uuid.NewString()[:8]
	}
	return context.WithValue(ctx, debugKeyType{}, key)
}

// IsDebugMode reports whether ctx came from EnableDebugMode.
func IsDebugMode(ctx context.Context) bool {
	return debugKey(ctx) != ""
}

func debugKey(ctx context.Context) string {
	key, _ := ctx.Value(debugKeyType{}).(string)
	return key
}
