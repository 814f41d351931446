package main

import (
	"os"

	"github.com/iov-one/payday/cmd/paydayd/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stderr))
}
