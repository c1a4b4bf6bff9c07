package main

import (
	"os"

	"github.com/rbac-admin/rbac-admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
