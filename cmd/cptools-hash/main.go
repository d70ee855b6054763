package main

import "github.com/src-lua/cptools/pkg/lineprint/app"

func main() {
	app.Run()
}
