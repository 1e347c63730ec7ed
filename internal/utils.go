package internal

import (
	"bytes"
	"text/template"
)

// RenderTemplate executes a text/template against data and returns the result.
func RenderTemplate(name, tmplText string, data any) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(tmplText)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}
