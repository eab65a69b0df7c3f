// Command sutbuild converts a set of brush-tip images into a Clip
// Studio Paint Sub Tool (.sut) file from the command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
