package earley

import (
	"bytes"

	"github.com/npillmayer/addrparse/lr"
	"github.com/npillmayer/addrparse/lr/iteratable"
	"github.com/npillmayer/schuko/tracing"
)

func dumpState(states []*iteratable.Set, stateno uint64) {
	if tracer().GetTraceLevel() < tracing.LevelDebug {
		return
	}
	tracer().Debugf("--- State %04d ------------------------------------", stateno)
	S := states[stateno]
	n := 1
	S.Each(func(x interface{}) {
		tracer().Debugf("[%2d] %s", n, x.(lr.Item))
		n++
	})
}

func itemSetString(S *iteratable.Set) string {
	var b bytes.Buffer
	b.WriteString("{")
	first := true
	S.Each(func(x interface{}) {
		if first {
			b.WriteString(" ")
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString(x.(lr.Item).String())
	})
	b.WriteString(" }")
	return b.String()
}
