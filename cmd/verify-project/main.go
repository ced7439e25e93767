// Command verify-project checks a Godot desktop badminton project for
// missing directories, files, configuration entries and assets.
package main

import (
	"os"

	"github.com/xiaolushuo/verify-project/cmd/verify-project/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
