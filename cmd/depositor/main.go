package main

import (
	"context"
	"fmt"
	"os"

	"github.com/psdi-data/depositor/pkg/cli"
)

func main() {
	ctx := context.Background()

	code, err := cli.Run(ctx, nil, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(code)
}
