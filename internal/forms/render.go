package forms

import (
	"bytes"
	"embed"
	"html"
	"html/template"
	"sort"
	"strings"
)

//go:embed templates/common_form.html
var templateFS embed.FS

var commonForm = template.Must(template.New("common_form.html").Funcs(template.FuncMap{
	"attrs": renderAttrs,
}).ParseFS(templateFS, "templates/common_form.html"))

// FormView is the render-ready state of a form.
type FormView struct {
	Title  string
	Fields []FieldView
	Errors []string
}

// FieldView is the render-ready state of one field.
type FieldView struct {
	Name      string
	ID        string
	Label     string
	Widget    Widget
	InputType string
	Required  bool
	Attrs     []Attr
	Value     string
	Checked   bool
	Options   []OptionView
	Errors    []string
}

// Attr is one widget attribute.
type Attr struct {
	Name  string
	Value string
}

// OptionView is one rendered option of a select.
type OptionView struct {
	Value    string
	Label    string
	Selected bool
}

// View maps the form's fields, values and errors to a view model. Bound forms
// show submitted values, unbound forms show initial values.
func (f *Form) View() FormView {
	view := FormView{Title: f.title}
	if f.errs != nil {
		view.Errors = append(view.Errors, f.errs[NonFieldErrors]...)
	}
	for _, field := range f.fields {
		view.Fields = append(view.Fields, f.fieldView(field))
	}
	return view
}

func (f *Form) fieldView(field *Field) FieldView {
	values := field.Initial
	if f.bound {
		values = f.values[field.Name]
	}

	fv := FieldView{
		Name:     field.Name,
		ID:       "id_" + field.Name,
		Label:    field.Label,
		Widget:   field.Widget,
		Required: field.Required,
	}
	if f.errs != nil {
		fv.Errors = f.errs[field.Name]
	}

	for name, value := range field.Attrs {
		if name == "type" {
			continue
		}
		fv.Attrs = append(fv.Attrs, Attr{Name: name, Value: value})
	}
	sort.Slice(fv.Attrs, func(i, j int) bool { return fv.Attrs[i].Name < fv.Attrs[j].Name })

	switch field.Widget {
	case WidgetSelect, WidgetSelectMultiple:
		selected := make(map[string]bool, len(values))
		for _, v := range values {
			selected[v] = true
		}
		if field.Widget == WidgetSelect && field.EmptyLabel != nil {
			fv.Options = append(fv.Options, OptionView{Label: *field.EmptyLabel, Selected: len(selected) == 0 || selected[""]})
		}
		for _, c := range field.Choices {
			fv.Options = append(fv.Options, OptionView{Value: c.Value, Label: c.Label, Selected: selected[c.Value]})
		}
	case WidgetCheckbox:
		if len(values) > 0 {
			switch strings.ToLower(values[0]) {
			case "on", "true", "1", "yes":
				fv.Checked = true
			}
		}
	case WidgetFileMultiple:
		fv.InputType = "file"
	default:
		fv.InputType = inputType(field)
		if len(values) > 0 {
			fv.Value = values[0]
		}
	}
	return fv
}

func inputType(field *Field) string {
	if t, ok := field.Attrs["type"]; ok {
		return t
	}
	switch field.Widget {
	case WidgetNumber:
		return "number"
	case WidgetDate:
		return "date"
	default:
		return "text"
	}
}

// AsHTML renders the form through the shared form template.
func (f *Form) AsHTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := commonForm.ExecuteTemplate(&buf, "common_form.html", f.View()); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func renderAttrs(attrs []Attr) template.HTMLAttr {
	var b strings.Builder
	for _, a := range attrs {
		b.WriteString(" ")
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Value))
		b.WriteString(`"`)
	}
	return template.HTMLAttr(b.String())
}
