package main

import (
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/spf13/pflag"
)

// config is an application configuration backed by command line flags.
// Every tracer of the application ("trace.<key>") gets the trace level given
// by flag --trace.
type config struct {
	traceLevel   string
	panicOnStuck bool
	values       map[string]string
}

var _ schuko.Configuration = (*config)(nil)

func newConfig() *config {
	c := &config{values: make(map[string]string)}
	c.InitDefaults()
	return c
}

func (c *config) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.traceLevel, "trace", "Error", "trace level [Error|Info|Debug]")
	flags.BoolVar(&c.panicOnStuck, "panic-on-parser-stuck", false, "panic if the parser gets stuck")
	_ = flags.MarkHidden("panic-on-parser-stuck")
}

// setupTracing installs Go standard logging as the tracing adapter and makes
// the configuration available to the parser packages.
func (c *config) setupTracing() error {
	c.values["panic-on-parser-stuck"] = strconv.FormatBool(c.panicOnStuck)
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(c, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	gconf.Initialize(c)
	tracer().Debugf("trace level is %s", c.traceLevel)
	return nil
}

// InitDefaults is part of interface schuko.Configuration.
func (c *config) InitDefaults() {
	c.values["tracing.adapter"] = "go"
	c.values["panic-on-parser-stuck"] = "false"
}

// IsSet is part of interface schuko.Configuration.
func (c *config) IsSet(key string) bool {
	return c.GetString(key) != ""
}

// GetString is part of interface schuko.Configuration.
func (c *config) GetString(key string) string {
	if v, ok := c.values[key]; ok {
		return v
	}
	if strings.HasPrefix(key, "trace.") {
		return c.traceLevel
	}
	return ""
}

// GetInt is part of interface schuko.Configuration.
func (c *config) GetInt(key string) int {
	n, _ := strconv.Atoi(c.GetString(key))
	return n
}

// GetBool is part of interface schuko.Configuration.
func (c *config) GetBool(key string) bool {
	b, _ := strconv.ParseBool(c.GetString(key))
	return b
}

// IsInteractive is part of interface schuko.Configuration.
func (c *config) IsInteractive() bool {
	return false
}
