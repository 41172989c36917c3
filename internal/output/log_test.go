package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLogging_DefaultsToTextPrefixedTargetLogger(t *testing.T) {
	SetupLogging(LogConfig{})
	defer SetupLogging(LogConfig{})

	l := TargetLogger("widget")
	assert.Contains(t, l.GetPrefix(), "widget")
}

func TestSetupLogging_JSONModeUsesFieldInsteadOfPrefix(t *testing.T) {
	SetupLogging(LogConfig{JSON: true})
	defer SetupLogging(LogConfig{})

	l := TargetLogger("widget")
	assert.Empty(t, l.GetPrefix())
}

func TestBoolPtr_ReturnsPointerToGivenValue(t *testing.T) {
	p := BoolPtr(true)
	assert.True(t, *p)
}
