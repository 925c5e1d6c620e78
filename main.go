package main

import "snapfix/cmd"

func main() {
	cmd.Execute()
}
