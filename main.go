package main

import "restopos/cmd"

func main() {
	cmd.Execute()
}
