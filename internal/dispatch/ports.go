package dispatch

import (
	"context"
	"encoding/json"
)

// ToolInvoker calls a tool exposed by a plugin host.
type ToolInvoker interface {
	InvokeTool(ctx context.Context, pluginID, toolName string, args json.RawMessage) (json.RawMessage, error)
}

// ExtensionCaller calls an operation exposed by an extension host.
type ExtensionCaller interface {
	CallOperation(ctx context.Context, extensionID, operation string, args json.RawMessage) (json.RawMessage, error)
}

// Broadcaster delivers a payload to every frontend subscribed to channel.
// Delivery is best effort; an error means the broadcast could not start.
type Broadcaster interface {
	Broadcast(ctx context.Context, channel string, payload json.RawMessage) error
}
