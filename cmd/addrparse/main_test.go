package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/addrparse/address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCmd(t *testing.T) {
	out, err := execute(t, "parse", "Winterallee 3")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Input: ``Winterallee 3``\n-----\n"), out)
	assert.Contains(t, out, `{"street":"Winterallee","housenumber":"3"}`)
}

func TestParseCmd_Unrecognized(t *testing.T) {
	_, err := execute(t, "parse", "Winterallee")
	require.Error(t, err)
	var uaf *address.UnrecognizedAddressFormat
	require.True(t, errors.As(err, &uaf))
	assert.Equal(t, 11, uaf.Position)
}

func TestParseCmd_Args(t *testing.T) {
	_, err := execute(t, "parse")
	require.Error(t, err)
}

func TestGrammarCmd(t *testing.T) {
	out, err := execute(t, "grammar")
	require.NoError(t, err)
	assert.Contains(t, out, "[numbered_before] ::= [numbered_street delimiter housenumber]")
	assert.Contains(t, out, "street_type")
	assert.Contains(t, out, "  housenumber      3 rules\n")
	assert.Contains(t, out, "Fingerprint: ")
}

func TestServeCmd_InvalidPort(t *testing.T) {
	_, err := execute(t, "serve", "http")
	require.Error(t, err)
}

func TestRun_ReportsErrors(t *testing.T) {
	cmd := newRootCmd()
	stderr := &bytes.Buffer{}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"serve", "http"})
	assert.Equal(t, 1, run(cmd))
	assert.Contains(t, stderr.String(), `invalid port "http"`)
	//
	cmd = newRootCmd()
	stderr.Reset()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"parse", "Winterallee"})
	assert.Equal(t, 1, run(cmd))
	assert.Contains(t, stderr.String(), "unexpected end of input")
	//
	cmd = newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"parse", "Winterallee 3"})
	assert.Equal(t, 0, run(cmd))
}

func TestConfig(t *testing.T) {
	c := newConfig()
	c.traceLevel = "Debug"
	assert.Equal(t, "Debug", c.GetString("trace.addrparse.lr"))
	assert.Equal(t, "go", c.GetString("tracing.adapter"))
	assert.Equal(t, "", c.GetString("tracing.destination"))
	assert.False(t, c.GetBool("panic-on-parser-stuck"))
	c.values["panic-on-parser-stuck"] = "true"
	assert.True(t, c.GetBool("panic-on-parser-stuck"))
	assert.True(t, c.IsSet("trace.root"))
}

func TestREPLEval(t *testing.T) {
	out := &bytes.Buffer{}
	eval("Winterallee", out)
	lines := strings.Split(out.String(), "\n")
	require.True(t, len(lines) >= 3, out.String())
	assert.Equal(t, "  Winterallee", lines[0])
	assert.Equal(t, "  "+strings.Repeat(" ", 11)+"^", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "  expected one of: "), lines[2])
	//
	out.Reset()
	eval("Winterallee 3", out)
	assert.Empty(t, out.String())
}
