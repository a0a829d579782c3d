package main

import "github.com/victorswan/gompsched/cmd"

func main() {
	cmd.Execute()
}
