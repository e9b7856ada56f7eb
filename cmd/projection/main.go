package main

import (
	"github.com/osresearch/p5.projection/cmd/projection/cmd"
)

func main() {
	cmd.Execute()
}
