package exitcodes

const (
	// ================================
	// Platform-universal exit codes
	// ================================

	// ExitCodeSuccess indicates no errors or failures had occurred.
	ExitCodeSuccess = 0

	// ExitCodeGeneralError indicates some type of general error occurred.
	ExitCodeGeneralError = 1

	// ================================
	// Application-specific exit codes
	// ================================
	// Note: Despite not being standardized, exit codes 2-5 are often used for common use cases, so we avoid them.

	// ExitCodeCompilationFailed indicates that the underlying toolchain produced artifacts that could not be
	// normalized into a compilation model. Note that an error with error code ExitCodeGeneralError and
	// ExitCodeCompilationFailed are mutually exclusive errors.
	ExitCodeCompilationFailed = 6

	// ExitCodeHandledError indicates the error was already reported by the command, so the top level should exit
	// without printing it again.
	ExitCodeHandledError = 7
)
