package main

import "db-fieldgen/cmd"

func main() {
	cmd.Execute()
}
