package structmap

import (
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithRegistry(t *testing.T) {
	r := NewRegistry()
	d := NewDecoder(WithRegistry(r))

	assert.Same(t, r, d.registry)
}

func TestWithLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	d := NewDecoder(WithLogger(logger))

	assert.Same(t, logger, d.logger)
}

func TestWithMaxDepth(t *testing.T) {
	d := NewDecoder(WithMaxDepth(4))

	assert.Equal(t, 4, d.maxDepth)
}

func TestWithKeyCase(t *testing.T) {
	d := NewDecoder(WithKeyCase(strings.ToUpper))

	assert.Equal(t, "FULL_NAME", d.keyCase("full_name"))
}

func TestNewDecoder_Defaults(t *testing.T) {
	d := NewDecoder()

	assert.Same(t, DefaultRegistry(), d.registry)
	assert.Equal(t, DefaultMaxDepth, d.maxDepth)
	assert.NotNil(t, d.logger)
	assert.Equal(t, "firstName", d.keyCase("first_name"))
}
