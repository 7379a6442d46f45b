package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs session reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the session in Markdown format.
func (w *MarkdownWriter) Write(session *Session) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, session)

	for i := range session.Forms {
		w.writeForm(md, &session.Forms[i])
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the session header with document information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, session *Session) {
	md.H1("Formfill Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Document", "`" + session.Document + "`"},
			{"Date", session.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Forms", strconv.Itoa(len(session.Forms))},
			{"Fields Filled", strconv.Itoa(session.FilledFieldCount())},
		},
	})
	md.PlainText("")

	if session.HasWarnings() {
		md.Warning("One or more forms produced a warning instead of suggestions.")
		md.PlainText("")
	}
}

// writeForm writes the result for a single form.
func (w *MarkdownWriter) writeForm(md *markdown.Markdown, form *FormResult) {
	name := form.Name
	if name == "" {
		name = "(unnamed form)"
	}
	md.H2("Form: " + name)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Signature", "`" + form.Signature + "`"},
			{"Fields", strconv.Itoa(form.FieldCount)},
			{"Classified", strconv.Itoa(form.KnownTypeCount)},
		},
	})
	md.PlainText("")

	if form.Fill != nil {
		w.writeFill(md, form.Fill)
	}
	if form.Suggestion != nil {
		w.writeSuggestion(md, form.Suggestion)
	}
}

// writeFill writes the filled fields table.
func (w *MarkdownWriter) writeFill(md *markdown.Markdown, fill *FillResult) {
	md.PlainText("### Filled Fields (record `" + fill.RecordID + "`)")
	md.PlainText("")

	if len(fill.Fields) == 0 {
		md.PlainText("No fields were filled.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(fill.Fields))
	for i, f := range fill.Fields {
		label := f.Label
		if label == "" {
			label = "-"
		}
		rows[i] = []string{f.Name, label, f.Type, f.Value}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Field", "Label", "Type", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSuggestion writes the suggestion table for a queried field.
func (w *MarkdownWriter) writeSuggestion(md *markdown.Markdown, sug *SuggestionResult) {
	md.PlainText("### Suggestions for `" + sug.FieldName + "`")
	md.PlainText("")

	if sug.Warning != "" {
		md.Cautionf("%s", sug.Warning)
		md.PlainText("")
		return
	}
	if len(sug.Entries) == 0 {
		md.PlainText("No suggestions.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(sug.Entries))
	for i, e := range sug.Entries {
		label := e.Label
		if label == "" {
			label = "-"
		}
		icon := e.Icon
		if icon == "" {
			icon = "-"
		}
		rows[i] = []string{e.Value, label, icon, strconv.FormatInt(int64(e.ID), 10)}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Value", "Label", "Icon", "ID"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [formfill](https://github.com/nao1215/formfill)*")
}
