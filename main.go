package main

import "food-diary-backend/cmd"

func main() {
	cmd.Run()
}
