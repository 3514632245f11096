package main

import "xpath-finder/internal/bootstrap"

func main() {
	bootstrap.NewApp().Run()
}
