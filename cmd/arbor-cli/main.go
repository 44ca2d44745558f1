package main

import "arbor/cmd/arbor-cli/cmd"

func main() {
	cmd.Execute()
}
