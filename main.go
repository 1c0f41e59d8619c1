package main

import (
	"fmt"
	"os"

	"github.com/opscart/dockerbench/internal/cli"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	os.Exit(0)
}
