package utils_test

import (
	"testing"

	"checklist/internal/utils"
)

func TestLoggerVerboseMode(t *testing.T) {
	logger := utils.GetLogger()

	utils.SetVerboseMode(true)
	if !logger.IsVerbose() {
		t.Error("expected verbose mode enabled")
	}

	utils.SetVerboseMode(false)
	if logger.IsVerbose() {
		t.Error("expected verbose mode disabled")
	}
}

func TestGetLoggerReturnsSingleton(t *testing.T) {
	if utils.GetLogger() != utils.GetLogger() {
		t.Error("expected the same logger instance")
	}
}
