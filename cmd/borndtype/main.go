// Command borndtype inspects dtype resolution for Born backends.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}
	cobra.CheckErr(NewCLI().ExecuteContext(context.Background()))
}
