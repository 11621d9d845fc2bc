package main

import (
	"flag"

	"github.com/plan-systems/klog"
)

var verbosity = flag.String("v", "1", "klog verbosity level")

func main() {
	flag.Parse()

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", *verbosity)
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	// With no script pathname, drop into the REPL.
	runPython(flag.Arg(0))

	klog.Flush()
}
