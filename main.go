package main

import (
	"backend/cmd"
	"context"
	"log"
	"os"
)

// make version a variable so the build system can inject it
var version = "unknown"

func main() {
	runCmd := cmd.ServerCli()

	err := runCmd.Run(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
