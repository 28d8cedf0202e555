package worker

// Log messages for the deviation notification worker
const (
	LogMsgNotifierStarted        = "Deviation notifier started"
	LogMsgNotifierPollFailed     = "Failed to poll predictions needing notification"
	LogMsgDeviationNotification  = "Yield deviation notification"
	LogMsgMarkNotifiedFailed     = "Failed to mark prediction as notified"
	LogMsgNotifierShutdown       = "Shutting down deviation notifier"
	LogMsgNotifierShutdownDone   = "Deviation notifier shutdown complete"
	LogMsgNotifierShutdownExpire = "Deviation notifier shutdown timeout"
)

// DefaultPollInterval is how often pending deviation notifications are checked.
const DefaultPollIntervalMinutes = 5
