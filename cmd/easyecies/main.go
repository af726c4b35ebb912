// Command easyecies generates key stores and encrypts data to them.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "easyecies: %v\n", err)
		os.Exit(1)
	}
}
