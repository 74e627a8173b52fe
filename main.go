package main

import (
	"sonicstream/cmd"
)

func main() {
	cmd.Execute()
}
