package main

import "github.com/gnames/dwcacheck/cmd"

func main() {
	cmd.Execute()
}
