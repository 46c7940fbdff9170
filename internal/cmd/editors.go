package cmd

import (
	"strings"

	"github.com/viberules/cli/internal/editor"
)

func editorList() string {
	return strings.Join(editor.Names(), ", ")
}
