package main

import (
	"context"

	"github.com/bjulian5/jjsubmit/cmd"
)

func main() {
	ctx := context.Background()
	cmd.Execute(ctx)
}
