package main

import "system-packages/internal/cli"

func main() {
	cli.Execute()
}
