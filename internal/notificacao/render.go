package notificacao

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/AlHayahDevelopments/property-inquiry/internal/inquiry"
)

const (
	ContentTypePlain = "text/plain"
	ContentTypeHTML  = "text/html"

	StylePlain  = "plain"
	StyleStyled = "styled"
)

// Renderer transforma o registro no corpo do email.
type Renderer interface {
	Render(rec inquiry.Record) (contentType, body string, err error)
}

// NewRenderer escolhe o renderer pelo nome configurado.
func NewRenderer(style, brand string) (Renderer, error) {
	switch style {
	case "", StylePlain:
		return PlainRenderer{}, nil
	case StyleStyled:
		return StyledRenderer{Brand: brand}, nil
	default:
		return nil, fmt.Errorf("unknown mail body style %q", style)
	}
}

// PlainRenderer: uma linha "Label: valor" por campo.
type PlainRenderer struct{}

func (PlainRenderer) Render(rec inquiry.Record) (string, string, error) {
	var b strings.Builder
	b.WriteString(IntroLine)
	b.WriteString("\n\n")
	for _, f := range rec.Fields() {
		fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
	}
	b.WriteString("\n")
	b.WriteString(ClosingLine)
	return ContentTypePlain, b.String(), nil
}

// StyledRenderer: tabela de duas colunas com cabeçalho e rodapé da marca.
// Mesmo conteúdo do PlainRenderer.
type StyledRenderer struct {
	Brand string
	// Now dá o ano do rodapé; nil usa time.Now.
	Now   func() time.Time
}

var styledTmpl = template.Must(template.New("inquiry-email").Parse(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background:#f4f4f4;font-family:Arial,Helvetica,sans-serif;">
  <div style="max-width:600px;margin:0 auto;background:#ffffff;">
    <div style="background:#1f3a5f;color:#ffffff;padding:20px;text-align:center;">
      <h1 style="margin:0;font-size:22px;">{{.Brand}}</h1>
      <p style="margin:4px 0 0;">New Property Inquiry</p>
    </div>
    <div style="padding:20px;">
      <p>{{.Intro}}</p>
      <table style="width:100%;border-collapse:collapse;">
        {{- range .Fields}}
        <tr>
          <td style="padding:8px;border:1px solid #dddddd;background:#f0f4f8;font-weight:bold;width:40%;">{{.Label}}</td>
          <td style="padding:8px;border:1px solid #dddddd;">{{.Value}}</td>
        </tr>
        {{- end}}
      </table>
      <p style="margin-top:20px;font-weight:bold;">{{.Closing}}</p>
    </div>
    <div style="background:#eeeeee;color:#666666;padding:12px;text-align:center;font-size:12px;">
      &copy; {{.Year}} {{.Brand}}. All rights reserved.
    </div>
  </div>
</body>
</html>
`))

func (r StyledRenderer) Render(rec inquiry.Record) (string, string, error) {
	now := r.Now
	if now == nil {
		now = time.Now
	}
	data := struct {
		Brand   string
		Intro   string
		Closing string
		Year    int
		Fields  []inquiry.Field
	}{
		Brand:   r.Brand,
		Intro:   IntroLine,
		Closing: ClosingLine,
		Year:    now().Year(),
		Fields:  rec.Fields(),
	}

	var buf bytes.Buffer
	if err := styledTmpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return ContentTypeHTML, buf.String(), nil
}
