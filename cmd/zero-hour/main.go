package main

import "github.com/oshokin/zero-hour/cmd/zero-hour/cmd"

func main() {
	cmd.Execute()
}
