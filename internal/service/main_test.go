package service

import (
	"os"
	"testing"

	"quizdeck_backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitNop()
	os.Exit(m.Run())
}
