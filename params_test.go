package main

import (
	"testing"

	"github.com/launchdarkly/go-http-stubs/framework"

	"github.com/stretchr/testify/assert"
)

func TestReadParams(t *testing.T) {
	var p commandParams
	assert.True(t, p.Read([]string{"stubcheck", "-run", "^matching", "-skip", "port", "-debug"}))
	assert.True(t, p.debug)
	assert.False(t, p.debugAll)
	assert.True(t, p.filters.AsFilter(framework.TestID{Path: []string{"matching", "query"}}))
	assert.False(t, p.filters.AsFilter(framework.TestID{Path: []string{"matching", "port"}}))
	assert.False(t, p.filters.AsFilter(framework.TestID{Path: []string{"routing"}}))
}

func TestReadParamsRejectsExtraArguments(t *testing.T) {
	var p commandParams
	assert.False(t, p.Read([]string{"stubcheck", "extra"}))
}
