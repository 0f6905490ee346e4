package main

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
)

func TestIsCleanExit(t *testing.T) {
	assert.True(t, isCleanExit(readline.ErrInterrupt))
	assert.True(t, isCleanExit(io.EOF))
	assert.True(t, isCleanExit(fmt.Errorf("prompt: %w", io.EOF)))
	assert.False(t, isCleanExit(errors.New("terminal unavailable")))
	assert.False(t, isCleanExit(nil))
}

func TestNewGeneratorSeeded(t *testing.T) {
	a := newGenerator(9).Generate("nmc")
	b := newGenerator(9).Generate("nmc")
	assert.Equal(t, a, b)
}
