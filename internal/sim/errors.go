package sim

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("sim: invalid config")

type StepError struct {
	Time    float64
	Frame   int
	Message string
}

func (e StepError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %s", e.Frame, e.Time, e.Message)
}
