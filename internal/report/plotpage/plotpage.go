// Package plotpage assembles one or more go-echarts charts into a single
// self-contained HTML report page, independent of which analysis produced
// the charts.
package plotpage

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

const styleTagLen = 8 // len("</style>")

// Hint is an interpretive note rendered below a chart section.
type Hint struct {
	Title string
	Items []string
}

// Renderable is anything go-echarts can render to HTML — every chart type
// (*charts.Bar, *charts.Pie, ...) satisfies this already.
type Renderable interface {
	Render(w io.Writer) error
}

// Section is one chart card on the page: a title, an optional subtitle and
// interpretive hint, and the chart itself.
type Section struct {
	Title    string
	Subtitle string
	Hint     Hint
	Chart    Renderable
}

// Page is a titled collection of chart sections rendered as one HTML
// document with the go-echarts runtime loaded once.
type Page struct {
	Title       string
	Description string
	Sections    []Section
}

// NewPage creates an empty page with the given title and description.
func NewPage(title, description string) *Page {
	return &Page{Title: title, Description: description}
}

// Add appends sections to the page in order.
func (p *Page) Add(sections ...Section) {
	p.Sections = append(p.Sections, sections...)
}

// Render writes the page as a complete HTML document to w.
func (p *Page) Render(w io.Writer) error {
	if err := writeHeader(w, p); err != nil {
		return err
	}

	for _, section := range p.Sections {
		if err := writeSection(w, section); err != nil {
			return err
		}
	}

	return writeFooter(w)
}

func writeHeader(w io.Writer, page *Page) error {
	const tpl = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>%s</title>
    <script src="https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"></script>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            margin: 0; padding: 20px; background: #0c0a09; color: #d6d3d1;
        }
        .wt-page { max-width: 1100px; margin: 0 auto; }
        .wt-page h1 { text-align: center; margin-bottom: 10px; }
        .wt-intro { text-align: center; color: #a8a29e; margin-bottom: 30px; font-size: 14px; }
        .wt-card {
            background: #1c1917; border-radius: 8px; padding: 20px;
            margin-bottom: 30px; box-shadow: 0 2px 4px rgba(0,0,0,0.4);
        }
        .wt-card h2 { font-size: 20px; font-weight: 600; margin: 0 0 5px 0; }
        .wt-card > p { font-size: 13px; color: #a8a29e; margin: 0 0 15px 0; }
        .wt-chart { overflow-x: auto; }
        .wt-chart > div { margin: 0 auto; }
        .wt-hint {
            background: #292524; border-left: 4px solid #22c55e;
            padding: 12px 15px; margin-top: 15px; font-size: 13px;
        }
        .wt-hint ul { margin: 8px 0 0 0; padding-left: 20px; }
        .wt-hint li { margin: 4px 0; }
    </style>
</head>
<body>
<div class="wt-page">
    <h1>%s</h1>
    <p class="wt-intro">%s</p>
`

	_, err := fmt.Fprintf(w, tpl, esc(page.Title), esc(page.Title), esc(page.Description))
	if err != nil {
		return fmt.Errorf("plotpage: write header: %w", err)
	}

	return nil
}

func writeSection(w io.Writer, section Section) error {
	chartHTML := renderChart(section.Chart)

	_, err := fmt.Fprintf(w, `
    <div class="wt-card">
        <h2>%s</h2>
        <p>%s</p>
        <div class="wt-chart">%s</div>`, esc(section.Title), esc(section.Subtitle), chartHTML)
	if err != nil {
		return fmt.Errorf("plotpage: write section: %w", err)
	}

	if len(section.Hint.Items) > 0 {
		if err := writeHint(w, section.Hint); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprint(w, "\n    </div>\n"); err != nil {
		return fmt.Errorf("plotpage: write section close: %w", err)
	}

	return nil
}

func writeHint(w io.Writer, hint Hint) error {
	var b strings.Builder

	b.WriteString("\n        <div class=\"wt-hint\">")

	if hint.Title != "" {
		fmt.Fprintf(&b, "<strong>%s</strong>", esc(hint.Title))
	}

	b.WriteString("\n            <ul>")

	for _, item := range hint.Items {
		fmt.Fprintf(&b, "\n                <li>%s</li>", esc(item))
	}

	b.WriteString("\n            </ul>\n        </div>")

	if _, err := w.Write([]byte(b.String())); err != nil {
		return fmt.Errorf("plotpage: write hint: %w", err)
	}

	return nil
}

func writeFooter(w io.Writer) error {
	if _, err := fmt.Fprint(w, "\n</div>\n</body>\n</html>"); err != nil {
		return fmt.Errorf("plotpage: write footer: %w", err)
	}

	return nil
}

func renderChart(chart Renderable) string {
	if chart == nil {
		return ""
	}

	var buf bytes.Buffer

	if err := chart.Render(&buf); err != nil {
		return ""
	}

	return extractChartContent(buf.String())
}

// extractChartContent strips go-echarts' own <html>/<body> scaffolding so
// several charts can share one page, keeping only the chart's container div.
func extractChartContent(html string) string {
	start := strings.Index(html, `<div class="container">`)
	if start == -1 {
		return html
	}

	end := strings.Index(html, `</body>`)
	if end == -1 {
		return html
	}

	content := html[start:end]
	content = strings.ReplaceAll(content, `class="container"`, `class="wt-echart-box"`)

	return removeStyleTags(content)
}

func removeStyleTags(content string) string {
	for {
		i := strings.Index(content, "<style>")
		if i == -1 {
			break
		}

		j := strings.Index(content[i:], "</style>")
		if j == -1 {
			break
		}

		content = content[:i] + content[i+j+styleTagLen:]
	}

	return content
}

func esc(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")

	return s
}
