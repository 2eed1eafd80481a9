package main

import "github.com/fakeyudi/internsim/cmd"

func main() {
	cmd.Execute()
}
