package parser

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/nao1215/formfill/internal/model"
)

// HTML element names that contribute form fields.
const (
	htmlElementForm     = "form"
	htmlElementInput    = "input"
	htmlElementSelect   = "select"
	htmlElementTextarea = "textarea"
	htmlElementLabel    = "label"
)

// Parser extracts form snapshots from HTML content.
//
// Design decision: We use golang.org/x/net/html rather than regex because
// it correctly handles the malformed HTML that real pages contain and
// gives us a proper DOM-like structure to associate labels with fields.
type Parser struct {
	// sourceURL is the URL of the document being parsed. It is stamped
	// onto every extracted form for scheme checks.
	sourceURL string
}

// New creates a parser for a document served from the given URL.
func New(sourceURL string) *Parser {
	return &Parser{sourceURL: sourceURL}
}

// Parse extracts all forms from the HTML document in DOM order.
func (p *Parser) Parse(content io.Reader) ([]model.LiveForm, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	// First pass: collect <label for="..."> texts so fields can resolve
	// their labels regardless of document position.
	labels := make(map[string]string)
	collectLabels(doc, labels)

	var forms []model.LiveForm
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == htmlElementForm {
			form := model.LiveForm{
				Name:      formName(n),
				SourceURL: p.sourceURL,
			}
			extractFields(n, labels, &form)
			forms = append(forms, form)
			return // forms don't nest
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return forms, nil
}

// formName returns the form's name attribute, falling back to its id.
func formName(n *html.Node) string {
	if name := getAttr(n, "name"); name != "" {
		return name
	}
	return getAttr(n, "id")
}

// collectLabels records the text of every <label for="..."> element,
// keyed by the target field id.
func collectLabels(n *html.Node, labels map[string]string) {
	if n.Type == html.ElementNode && n.Data == htmlElementLabel {
		if target := getAttr(n, "for"); target != "" {
			labels[target] = strings.TrimSpace(nodeText(n))
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectLabels(c, labels)
	}
}

// extractFields recursively extracts the fields of a form element.
func extractFields(n *html.Node, labels map[string]string, form *model.LiveForm) {
	if n.Type == html.ElementNode &&
		(n.Data == htmlElementInput || n.Data == htmlElementSelect || n.Data == htmlElementTextarea) {
		if field, ok := buildField(n, labels); ok {
			form.Fields = append(form.Fields, field)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractFields(c, labels, form)
	}
}

// Input types that never hold fillable data.
var skippedInputTypes = map[string]bool{
	"submit":   true,
	"button":   true,
	"reset":    true,
	"image":    true,
	"file":     true,
	"checkbox": true,
	"radio":    true,
	"password": true,
}

// buildField converts a field element into a LiveField. Nameless fields
// and non-data controls (buttons, checkboxes, passwords) are skipped.
func buildField(n *html.Node, labels map[string]string) (model.LiveField, bool) {
	name := getAttr(n, "name")
	if name == "" {
		return model.LiveField{}, false
	}

	typeAttr := strings.ToLower(getAttr(n, "type"))
	if n.Data == htmlElementInput && skippedInputTypes[typeAttr] {
		return model.LiveField{}, false
	}

	label := ""
	if id := getAttr(n, "id"); id != "" {
		label = labels[id]
	}
	if label == "" {
		// Placeholder text is the common fallback when no <label> points
		// at the field.
		label = strings.TrimSpace(getAttr(n, "placeholder"))
	}

	maxLength := 0
	if raw := getAttr(n, "maxlength"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			maxLength = v
		}
	}

	return model.LiveField{
		Identity: model.FieldIdentity{
			Name:    name,
			Label:   label,
			Control: model.ControlKindFromType(n.Data, typeAttr),
		},
		MaxLength:    maxLength,
		Autocomplete: strings.ToLower(getAttr(n, "autocomplete")),
		Value:        getAttr(n, "value"),
	}, true
}

// nodeText concatenates the text content beneath a node.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
