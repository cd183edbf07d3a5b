package main

import (
	"github.com/de-scientist/notely-new/internal/command"
	"github.com/de-scientist/notely-new/internal/command/serve"
)

func main() {
	command.Main("notely", "Personal note-taking service", serve.Command())
}
