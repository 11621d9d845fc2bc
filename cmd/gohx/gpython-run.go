package main

import (
	"log"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	"github.com/go-python/gpython/repl/cli"
	"github.com/plan-systems/klog"

	_ "github.com/go-python/gpython/stdlib"
	_ "github.com/hx-systems/gohx/pyhx"
)

func runPython(pathname string) {
	ctx := py.NewContext(py.DefaultContextOpts())

	var err error
	if len(pathname) == 0 {
		replCtx := repl.New(ctx)

		_, err = py.RunFile(ctx, "lib/_REPL_startup.py", py.CompileOpts{}, replCtx.Module)
		if err == nil {
			cli.RunREPL(replCtx)
		}
	} else {
		startTime := time.Now()
		klog.Infof("executing %q", pathname)

		_, err = py.RunFile(ctx, pathname, py.CompileOpts{}, nil)
		if err == nil {
			klog.Infof("execution complete: %v", time.Since(startTime))
		}
	}

	ctx.Close()
	<-ctx.Done()

	if err != nil {
		py.TracebackDump(err)
		log.Fatal(err)
	}
}
