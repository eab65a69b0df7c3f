package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sutbuild",
	Short: "Build Clip Studio Paint Sub Tool (.sut) files from brush-tip images",
}
