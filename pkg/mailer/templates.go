package mailer

import (
	"bytes"
	"fmt"
	htmpl "html/template"
)

var welcomeHTML = htmpl.Must(htmpl.New("welcome").Parse(`
<h2>Welcome to {{.AppName}}, {{.Name}}!</h2>
<p>Your account is ready. Add your skills and experience to get matched with courses.</p>
`))

var loginHTML = htmpl.Must(htmpl.New("login_notification").Parse(`
<h2>New login to your account</h2>
<p>Hi {{.Name}}, we noticed a new login at {{.Time}}.</p>
<p>If this was not you, please reset your password.</p>
`))

// Render produces subject, text, and html bodies for a templated job.
// Jobs with no template are passed through unchanged.
func Render(job *EmailJob) error {
	if job.Template == "" {
		return nil
	}
	data := job.Data
	if data == nil {
		data = map[string]any{}
	}
	var tpl *htmpl.Template
	switch job.Template {
	case TemplateWelcome:
		job.Subject = fmt.Sprintf("Welcome to %v", data["AppName"])
		job.Text = fmt.Sprintf("Welcome, %v! Your account is ready.", data["Name"])
		tpl = welcomeHTML
	case TemplateLoginNotification:
		job.Subject = "New login to your account"
		job.Text = fmt.Sprintf("Hi %v, we noticed a new login at %v.", data["Name"], data["Time"])
		tpl = loginHTML
	default:
		return fmt.Errorf("unknown email template %q", job.Template)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return err
	}
	job.HTML = buf.String()
	return nil
}
