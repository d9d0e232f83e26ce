// Package report renders inspection results for the terminal or as YAML.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.trai.ch/bidsapp/internal/core/domain"
	"go.trai.ch/bidsapp/internal/ui/output"
	"go.trai.ch/bidsapp/internal/ui/style"
	"gopkg.in/yaml.v3"
)

// Text writes one block per app.
func Text(w io.Writer, reports []domain.AppReport) error {
	s := style.New(output.NewRenderer(w))
	var b strings.Builder
	for i, r := range reports {
		if i > 0 {
			b.WriteString("\n")
		}
		writeApp(&b, s, &r)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// SchemaText writes the fixed schema fields.
func SchemaText(w io.Writer, schema domain.SchemaReport) error {
	s := style.New(output.NewRenderer(w))
	var b strings.Builder
	b.WriteString(s.Title.Render("schema") + "\n")
	writeFields(&b, s, "inputs", schema.Inputs)
	writeFields(&b, s, "outputs", schema.Outputs)
	_, err := io.WriteString(w, b.String())
	return err
}

// YAML encodes v with two-space indentation.
func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeApp(b *strings.Builder, s style.Styles, r *domain.AppReport) {
	fmt.Fprintf(b, "%s  %s  %s\n", s.Title.Render(r.Name), s.Muted.Render(r.ImageTag), status(s, r.Status))
	writeProperty(b, s, "file", r.File)
	writeProperty(b, s, "command", r.Command)
	writeProperty(b, s, "digest", r.Digest)
	writeFields(b, s, "inputs", r.Inputs)
	writeFields(b, s, "outputs", r.Outputs)
	if len(r.Xor) > 0 {
		b.WriteString("  " + s.Label.Render("xor") + "\n")
		for _, group := range r.Xor {
			b.WriteString("    " + strings.Join(group, " | ") + "\n")
		}
	}
}

const propertyWidth = 7

func writeProperty(b *strings.Builder, s style.Styles, label, value string) {
	pad := strings.Repeat(" ", propertyWidth-len(label))
	b.WriteString("  " + s.Label.Render(label) + pad + "  " + value + "\n")
}

func status(s style.Styles, st domain.Status) string {
	switch st {
	case domain.StatusNew:
		return s.Warn.Render(style.Dot + " new")
	case domain.StatusChanged:
		return s.Fail.Render(style.Tilde + " changed")
	case domain.StatusUnchanged:
		return s.Success.Render(style.Check + " unchanged")
	default:
		return s.Muted.Render(style.Circle + " untracked")
	}
}

// writeFields writes an aligned table of name, type, position, argstr and note.
func writeFields(b *strings.Builder, s style.Styles, label string, fields []domain.FieldReport) {
	if len(fields) == 0 {
		return
	}
	b.WriteString("  " + s.Label.Render(label) + "\n")

	rows := make([][]string, len(fields))
	widths := make([]int, 5)
	for i, f := range fields {
		rows[i] = []string{f.Name, f.Type, position(f.Position), argStr(f.ArgStr), note(&f)}
		for c, cell := range rows[i] {
			widths[c] = max(widths[c], len(cell))
		}
	}

	for _, row := range rows {
		var line strings.Builder
		for c, cell := range row {
			if c > 0 {
				line.WriteString("  ")
			}
			text := cell
			if c == 0 {
				text = s.Label.Render(cell)
			} else if c == 4 && cell != "" {
				text = s.Muted.Render(cell)
			}
			line.WriteString(text + strings.Repeat(" ", widths[c]-len(cell)))
		}
		b.WriteString("    " + strings.TrimRight(line.String(), " ") + "\n")
	}
}

func position(p int) string {
	switch {
	case p > 0:
		return "$" + strconv.Itoa(p)
	case p == -1:
		return "last"
	case p < -1:
		return "last-" + strconv.Itoa(-p-1)
	default:
		return ""
	}
}

func argStr(a string) string {
	if a == "" {
		return ""
	}
	return strconv.Quote(a)
}

func note(f *domain.FieldReport) string {
	switch {
	case f.Mandatory:
		return "required"
	case f.Default != "":
		return "default " + f.Default
	default:
		return ""
	}
}
