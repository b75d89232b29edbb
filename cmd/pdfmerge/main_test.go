package main

import (
	"errors"
	"testing"

	"go.uber.org/goleak"

	"github.com/wudi/pdfmerge/engine"
	"github.com/wudi/pdfmerge/engine/enginetest"
)

const (
	testEngine    = "cli-fake"
	failingEngine = "cli-failing"
)

var (
	fake    = &enginetest.Engine{EngineName: testEngine}
	failing = &enginetest.Engine{EngineName: failingEngine, WriteErr: errors.New("disk quota exceeded")}
)

func TestMain(m *testing.M) {
	engine.Register(fake)
	engine.Register(failing)
	goleak.VerifyTestMain(m)
}
