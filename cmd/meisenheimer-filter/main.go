// cmd/meisenheimer-filter/main.go
package main

import (
	"meisenheimer/internal/app"
	"meisenheimer/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
