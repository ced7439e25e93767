package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_Status_PrintsIconAndMessage(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing a status message
	w.Status("*", "Checking user configuration")

	// Then: output is the icon and message on one line
	assert.Equal(t, "* Checking user configuration\n", buf.String())
}

func TestWriter_Status_EmptyIconIndents(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Status("", "- watch.debounce")

	assert.Equal(t, "  - watch.debounce\n", buf.String())
}

func TestWriter_Icons(t *testing.T) {
	tests := []struct {
		name  string
		print func(w *Writer)
		want  string
	}{
		{"success", func(w *Writer) { w.Success("Created user configuration") }, "✓ Created user configuration\n"},
		{"warning", func(w *Writer) { w.Warningf("%d backups", 3) }, "⚠ 3 backups\n"},
		{"error", func(w *Writer) { w.Errorf("cannot write %s", "config.yaml") }, "✗ cannot write config.yaml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.print(New(buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriter_Field(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Field("Location", "/home/dev/.config/verify-project/config.yaml")

	assert.Equal(t, "  Location: /home/dev/.config/verify-project/config.yaml\n", buf.String())
}

func TestWriter_Code_PrintsIndentedBlock(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Code("output:\n  format: text\n")

	assert.Equal(t, "\n  output:\n    format: text\n\n", buf.String())
}

func TestWriter_Newline_PrintsEmptyLine(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Newline()

	assert.Equal(t, "\n", buf.String())
}

func TestNewWithColor_StylesIcons(t *testing.T) {
	buf := &bytes.Buffer{}
	NewWithColor(buf, true).Success("done")

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "done")
}
