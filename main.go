// ABOUTME: Entry point for the todochat client
// ABOUTME: Terminal UI and scriptable commands for the chat-driven todo backend

package main

import (
	"fmt"
	"os"

	"github.com/ahermansen/todochat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
