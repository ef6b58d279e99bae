// radencodectl -- CLI for encoding RADIUS attribute fixtures.
package main

import "github.com/dantte-lp/goradius/cmd/radencodectl/commands"

func main() {
	commands.Execute()
}
