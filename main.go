package main

import "github.com/astrocli/astro/cmd"

func main() {
	cmd.Execute()
}
