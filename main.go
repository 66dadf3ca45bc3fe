package main

import "github.com/xrsl/wfx/cmd"

func main() {
	cmd.Execute()
}
