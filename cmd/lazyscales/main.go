// Command lazyscales explores scales, modes and fretboard layouts.
package main

import "github.com/papapumpkin/lazyscales/cmd"

func main() {
	cmd.Execute()
}
