package main

import "github.com/inkwell-press/inkwell/cmd/inkwell/cmd"

func main() {
	cmd.Execute()
}
