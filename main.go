package main

import "github.com/ArnaudCalmettes/greygrid/cmd"

func main() {
	cmd.Execute()
}
