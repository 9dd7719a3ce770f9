package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *PollwatchError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *PollwatchError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *PollwatchError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Scan errors

// DirectoryUnreadable marks a fatal per-cycle enumeration failure: the watched
// directory was deleted or cannot be opened. Retryable because the next cycle
// may succeed if the directory reappears.
func DirectoryUnreadable(dir string, cause error) *PollwatchError {
	return WrapRetryable(cause, CategoryFileSystem, SeverityError, "watched directory unreadable").
		WithContext("directory", dir)
}

func DiscoveryError(root string, cause error) *PollwatchError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "subdirectory discovery failed").
		WithContext("root", root)
}

// Integration errors

func JournalError(operation string, cause error) *PollwatchError {
	return Wrap(cause, CategoryJournal, SeverityError, "change journal operation failed").
		WithContext("operation", operation)
}

func NotifyError(subject string, cause error) *PollwatchError {
	return WrapRetryable(cause, CategoryNotify, SeverityWarning, "change notification publish failed").
		WithContext("subject", subject)
}

// Internal errors

func InternalError(message string, cause error) *PollwatchError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
