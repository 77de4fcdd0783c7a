package main

import (
	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{Use: "gramsevak"}

	root.AddCommand(serveCMD(), indexCMD(), tokenCMD())
	_ = root.Execute()
}
