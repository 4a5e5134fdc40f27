package main

import (
	"flamtunes/cmd"
)

func main() {
	cmd.Execute()
}
