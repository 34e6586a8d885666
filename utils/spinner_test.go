package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinner_StartStop(t *testing.T) {
	var buf bytes.Buffer

	s := NewSpinner("loading", time.Millisecond)
	s.SetWriter(&buf)
	s.StopMsg = "done"

	s.Start()
	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.Stop()
	s.Stop()

	out := buf.String()
	assert.True(t, strings.Contains(out, "loading"))
	assert.True(t, strings.HasSuffix(out, "done"))
	assert.Equal(t, 1, strings.Count(out, "done"))
}
