package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// EmailData carries the fields the templates render.
type EmailData struct {
	Username string `json:"Username"`
	Email    string `json:"Email"`
	AppName  string `json:"AppName"`
	Code     string `json:"Code"` // OTP code
	Minutes  int    `json:"Minutes"`
	Year     int    `json:"Year"`
}

// NewEmailData fills the defaulted fields.
func NewEmailData(appName, username, email string) EmailData {
	return EmailData{
		AppName:  appName,
		Username: username,
		Email:    email,
		Year:     time.Now().UTC().Year(),
	}
}

// ToMap converts EmailData into the loosely typed EmailJob payload.
func ToMap(d EmailData) map[string]any {
	return map[string]any{
		"Username": d.Username,
		"Email":    d.Email,
		"AppName":  d.AppName,
		"Code":     d.Code,
		"Minutes":  d.Minutes,
		"Year":     d.Year,
	}
}

// renderFile loads and renders a single template file from the embedded FS.
// isHTML selects html/template escaping.
func renderFile(filename string, isHTML bool, data any) (string, error) {
	var (
		buf bytes.Buffer
		err error
	)
	if isHTML {
		tpl, e := htmpl.ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse html %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	} else {
		tpl, e := texttpl.ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse text %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	}
	if err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return buf.String(), nil
}

// Render loads subject, text, and html templates for the given base name.
// Expects: <name>.subject.tmpl, <name>.text.tmpl, <name>.html.tmpl
func Render(name string, data any) (subject string, text string, html string, err error) {
	subject, err = renderFile(name+".subject.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	text, err = renderFile(name+".text.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	html, err = renderFile(name+".html.tmpl", true, data)
	if err != nil {
		return "", "", "", err
	}
	return subject, text, html, nil
}
