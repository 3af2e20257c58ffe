package main

import "chamados/cmd"

func main() {
	cmd.Execute()
}
