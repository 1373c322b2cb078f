package main

import "github.com/Tiliavir/bitacora/cmd"

func main() {
	cmd.Execute()
}
