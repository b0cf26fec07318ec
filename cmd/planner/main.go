package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tiktok-planner/infrastructure/clients/proxy"
	"tiktok-planner/infrastructure/configuration"
	"tiktok-planner/infrastructure/logger"
	"tiktok-planner/usecase"

	"github.com/spf13/afero"
)

func main() {
	c := configuration.C
	proxyURL := flag.String("proxy", c.Client.ProxyURL, "base URL of the search proxy")
	backend := flag.String("backend", c.Queue.Backend, "queue backend: file, memory, redis, postgres or mysql")
	keyword := flag.String("keyword", c.Client.DefaultKeyword, "keyword searched at startup, empty to skip")
	logLevel := flag.String("log-level", "warn", "log level written to stderr")
	flag.Parse()

	logger.SetOutput(os.Stderr)
	logger.SetLevel(*logLevel)
	c.Client.ProxyURL = *proxyURL
	c.Queue.Backend = *backend

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, c, *keyword); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c configuration.Config, keyword string) error {
	api, err := proxy.NewProxyClient(c.Client.ProxyURL, time.Duration(c.TikWM.TimeoutSeconds+5)*time.Second)
	if err != nil {
		return err
	}

	blob, closeBlob, err := newBlobStore(ctx, c, afero.NewOsFs())
	if err != nil {
		return err
	}
	defer closeBlob()

	controller := usecase.NewSearchController(api, c.Client.PageSize, c.Client.ErrorMessage)
	queue := usecase.NewQueueStore(ctx, blob, c.Queue.Key)
	repl := NewREPL(controller, queue, c.Client.PresetKeywords, os.Stdout)

	fmt.Fprintf(os.Stdout, "queue: %d videos (%s backend), type help for commands\n", queue.Len(), c.Queue.Backend)
	if strings.TrimSpace(keyword) != "" {
		repl.Exec(ctx, "search "+keyword)
	}
	return repl.Run(ctx, os.Stdin)
}
