package epp

import "fmt"

// ConfigurationError rejects an extension not declared to accompany a command.
type ConfigurationError struct {
	Command   string
	Extension string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("epp: extension %s is not declared to accompany %s", e.Extension, e.Command)
}

// CommandError is returned alongside a decoded response whose result code
// reports failure.
type CommandError struct {
	Command string
	Result  Result
}

func (e CommandError) Error() string {
	return fmt.Sprintf("epp: %s failed: %d %s", e.Command, e.Result.Code, e.Result.Message)
}
