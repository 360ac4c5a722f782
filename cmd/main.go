package main

import (
	cmd "github.com/indiecore/bwproxy/cmd/bwproxy"
)

func main() {
	cmd.Execute()
}
