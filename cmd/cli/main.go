package main

import (
	"fmt"
	"os"

	"github.com/crucial707/todo-api/cmd/cli/auth"
	"github.com/crucial707/todo-api/cmd/cli/root"

	// Registered via init()
	_ "github.com/crucial707/todo-api/cmd/cli/lists"
	_ "github.com/crucial707/todo-api/cmd/cli/tasks"
)

func main() {
	auth.InitAuth(root.GetRoot())

	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
