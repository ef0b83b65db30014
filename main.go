package main

import "status-page/cmd"

func main() {
	cmd.Execute()
}
