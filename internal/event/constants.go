package event

const (
	// EventSchemaVersion is the current version of the event payload schema.
	EventSchemaVersion = "1.0"

	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)
