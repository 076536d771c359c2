package main

import "timetabler/cmd"

func main() {
	cmd.Execute()
}
