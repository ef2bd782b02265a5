/*
Copyright © 2024 Dean
*/
package main

import "filebot/cmd"

func main() {
	cmd.Execute()
}
