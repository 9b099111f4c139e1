package logging

import (
	"go.uber.org/zap"
)

// L is the process-wide logger. It defaults to a no-op so tests and
// tools that never call Init stay quiet.
var L = zap.NewNop()

func Init() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	L = logger
	return nil
}
