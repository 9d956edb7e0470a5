/*
Copyright © 2025 Yussuf
*/
package main

import "epoca/cmd"

func main() {
	cmd.Execute()
}
