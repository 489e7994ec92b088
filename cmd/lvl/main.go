package main

import "github.com/MehradMi/Solo-Leveling-Task-Tracker/cmd/lvl/root"

func main() {
	root.Execute()
}
