package main

import "canopy/treelog/cmd"

func main() {
	cmd.Execute()
}
