package ragiegpt

import "fmt"

// ConfigError reports a required environment variable that is not set.
type ConfigError struct {
	Variable string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing %s environment variable", e.Variable)
}

// ValidationError reports a required command-line flag that is missing or
// empty.
type ValidationError struct {
	Flag string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required flag --%s", e.Flag)
}

// ExternalServiceError wraps a failure returned by one of the hosted
// services. Service names the collaborator (Ragie, OpenAI) and Op the call
// that failed.
type ExternalServiceError struct {
	Service string
	Op      string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Service, e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by an operation to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	return 1
}
