package main

import "github.com/example/reading-portal/cmd"

func main() {
	cmd.Execute()
}
