package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Args(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"12345678-5", "vecino@example.cl"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Equal(t,
		"12345678-5\trut\tvalid\t12.345.678-5\n"+
			"vecino@example.cl\temail\tvalid\tvecino@example.cl\n",
		stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRun_InvalidSetsExitCode(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"ab"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "ab\tusername\tinvalid\t")
}

func TestRun_StdinJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader("12345678\n\n  juan.perez  \n")

	code := run([]string{"-json"}, stdin, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)

	var first report
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "12345678", first.Input)
	assert.Equal(t, "dni", string(first.Type))
	assert.True(t, first.Valid)

	var second report
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "juan.perez", second.Input)
	assert.Equal(t, "username", string(second.Type))
}

func TestRun_BadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-nope"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "Usage: identcheck")
}
