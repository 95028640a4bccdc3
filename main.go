package main

import "github.com/kozaktomas/photo-events/cmd"

func main() {
	cmd.Execute()
}
