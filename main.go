// Command posadmin is the terminal admin console of the POS system. It logs
// an operator in, keeps the session between runs and shows the live sales
// dashboard.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"posadmin/config"
)

func main() {
	logger := log.New(os.Stderr, "[posadmin] ", log.LstdFlags)
	config.LoadEnv(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], config.Load(), logger, stdio{in: os.Stdin, out: os.Stdout, err: os.Stderr})
	stop()
	os.Exit(code)
}
