package batch

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Roles of the files produced for every input.
const (
	RoleResult = "result"
	RoleBase   = "base"
	RoleKey    = "grid"
)

// OutputName derives an output file name from the input name, the number of
// colors and the role of the file, e.g. "4colors_result_girl.jpg".
func OutputName(name string, colors int, role string) string {
	name = filepath.Base(name)
	if role == RoleKey {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".yaml"
	}
	return fmt.Sprintf("%dcolors_%s_%s", colors, role, name)
}
