package main

import "github.com/OpenTraceLab/OpenTraceLiberty/cmd/liberty/cmd"

func main() {
	cmd.Execute()
}
