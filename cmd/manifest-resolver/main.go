package main

import "manifest-resolver/internal/cli"

func main() {
	cli.Execute()
}
