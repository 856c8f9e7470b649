package main

import (
	"context"
	"os"

	"github.com/wyfcoding/storefront/internal/storefront/interfaces/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), cli.Options{}))
}
