// cubelayers - interactive 3x3x3 cube with 2D layer views.
package main

import (
	"github.com/SeamusWaldron/cubelayers/internal/cli"
)

func main() {
	cli.Execute()
}
