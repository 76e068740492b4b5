package desktop

import "fmt"

// Result reports the outcome of a high-level operation. Expected failures,
// such as a tab that does not exist, are results with OK false; Go errors
// are reserved for broken sessions and configuration mistakes.
type Result struct {
	OK      bool     `yaml:"ok"                json:"ok"`
	Action  string   `yaml:"action"            json:"action"`
	Target  string   `yaml:"target,omitempty"  json:"target,omitempty"`
	Message string   `yaml:"message,omitempty" json:"message,omitempty"`
	Items   []string `yaml:"items,omitempty"   json:"items,omitempty"`
}

func (r Result) ok(format string, args ...any) Result {
	r.OK = true
	r.Message = fmt.Sprintf(format, args...)
	return r
}

func (r Result) fail(format string, args ...any) Result {
	r.OK = false
	r.Message = fmt.Sprintf(format, args...)
	return r
}

// Err converts a failed result into an error, for callers that treat any
// failure as fatal.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return fmt.Errorf("%s %s: %s", r.Action, r.Target, r.Message)
}
