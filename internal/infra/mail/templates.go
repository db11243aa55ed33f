package mail

import (
	"bytes"
	"html/template"

	"github.com/pkg/errors"
)

var (
	welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background-color:#0b0b0b;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0" style="padding:40px 0;">
    <tr><td align="center">
      <table width="480" cellpadding="0" cellspacing="0" style="background-color:#161616;border-radius:8px;padding:40px;">
        <tr><td>
          <h1 style="color:#ff6a00;font-size:24px;margin:0 0 16px 0;">SkateHubba</h1>
          <p style="color:#e5e5e5;font-size:15px;line-height:1.6;">You're on the list. We'll let you know the moment SkateHubba opens up.</p>
          <p style="color:#e5e5e5;font-size:15px;line-height:1.6;">Until then, go skate.</p>
          <a href="{{.AppURL}}" style="color:#ff6a00;">{{.AppURL}}</a>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`))

	confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background-color:#0b0b0b;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0" style="padding:40px 0;">
    <tr><td align="center">
      <table width="480" cellpadding="0" cellspacing="0" style="background-color:#161616;border-radius:8px;padding:40px;">
        <tr><td>
          <h1 style="color:#ff6a00;font-size:24px;margin:0 0 16px 0;">SkateHubba</h1>
          <p style="color:#e5e5e5;font-size:15px;line-height:1.6;">{{if .FirstName}}Hey {{.FirstName}}, thanks{{else}}Thanks{{end}} for subscribing to SkateHubba updates.</p>
          <p style="color:#8a8a8a;font-size:13px;line-height:1.6;">If this wasn't you, ignore this email and you won't hear from us again.</p>
          <a href="{{.AppURL}}" style="color:#ff6a00;">{{.AppURL}}</a>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`))
)

type templateData struct {
	AppURL    string
	FirstName string
	Source    string
}

func render(tmpl *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "failed to render %s email", tmpl.Name())
	}

	return buf.String(), nil
}
