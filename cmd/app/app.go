package main

import "github.com/niholbooks/shop-bot/internal/app"

func main() {
	app.Run()
}
