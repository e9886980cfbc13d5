package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	cmd "github.com/cocosip/go-dicom-rle/cmd/rlectl/cmd"
	"github.com/cocosip/go-dicom-rle/internal/logging"
)

var (
	GitSHA string = "NA"
)

func main() {
	// register sigterm for graceful shutdown
	ctx, cnc := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cnc()
	go func() {
		defer cnc() // removes the signal so a second ctrl-c kills the process
		<-ctx.Done()
	}()
	slog.SetDefault(logging.Logger(os.Stderr, false, slog.LevelInfo))
	ctx = logging.AppendCtx(ctx,
		slog.Group("rlectl",
			slog.String("git", GitSHA),
			slog.String("run", uuid.NewString()),
		))
	if err := cmd.NewRoot(ctx, GitSHA).Execute(); err != nil {
		os.Exit(1)
	}
}
