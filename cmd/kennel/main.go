// Command kennel registers named animals and makes them produce their sound.
package main

import "github.com/mesh-intelligence/kennel/internal/cli"

func main() {
	cli.Execute()
}
