package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/bootstrap"
)

// @title			goodmem API
// @version		v1
// @description	Multi-tenant vector memory service: users, API keys, embedders, spaces, and memories.
// @license.name	Apache 2.0
// @license.url	http://www.apache.org/licenses/LICENSE-2.0.html
// @host			localhost:8080
// @BasePath		/
func main() {
	service, err := bootstrap.InitServers()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize goodmem service: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := service.Run(ctx); err != nil {
		service.Logger.Errorf("service exited with error: %v", err)
		_ = service.Logger.Sync()

		os.Exit(1)
	}
}
