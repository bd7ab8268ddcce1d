// Command conftree reads values from a configuration tree.
//
//	conftree -C /etc/app get db/port server.json/listen
//	conftree query features.json '$.flags[?(@.enabled == true)].name'
//	conftree ensure --reload db
//	conftree loaders
package main

import (
	"fmt"
	"os"
)

func main() {
	err := newRootCommand(os.Stdout, os.Stderr).Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "conftree: %v\n", err)
		os.Exit(1)
	}
}
