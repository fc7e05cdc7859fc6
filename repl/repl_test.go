package repl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartSimplifiesEachLine(t *testing.T) {
	in := strings.NewReader("2 + 3\nx * 0\n")
	var out strings.Builder

	Start(in, &out)

	output := out.String()
	assert.Contains(t, output, "=> 5")
	assert.Contains(t, output, "=> 0")
}

func TestStartReportsParseErrorsAndContinues(t *testing.T) {
	in := strings.NewReader("2 +\n3 + 4\n")
	var out strings.Builder

	Start(in, &out)

	output := out.String()
	assert.Contains(t, output, "parse error")
	assert.Contains(t, output, "=> 7")
}

func TestStartSkipsBlankLines(t *testing.T) {
	in := strings.NewReader("\n\n1 + 1\n")
	var out strings.Builder

	Start(in, &out)

	assert.Contains(t, out.String(), "=> 2")
}
