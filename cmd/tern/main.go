package main

import (
	"github.com/ternkv/tern/cmd/root"
	_ "github.com/ternkv/tern/cmd/standalone"
)

func main() {
	root.Execute()
}
