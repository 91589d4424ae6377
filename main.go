package main

import "modem-rotatord/cmd"

func main() {
	cmd.Execute()
}
