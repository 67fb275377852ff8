package main

import "cssmin/cmd"

func main() {
	cmd.Execute()
}
