package main

import "github.com/mindslayer001/tracebug/cmd"

func main() {
	cmd.Execute()
}
