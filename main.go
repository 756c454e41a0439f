package main

import "momo-store/cmd"

func main() {
	cmd.Execute()
}
