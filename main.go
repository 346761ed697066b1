package main

import "github.com/lokhei/Ridesharing-Simulation/cmd"

func main() {
	cmd.Execute()
}
