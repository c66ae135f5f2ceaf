package main

import "github.com/tenqz/tagparser/cmd"

func main() {
	cmd.Execute()
}
