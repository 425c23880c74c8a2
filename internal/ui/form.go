package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// formField indexes the splash-screen inputs in tab order.
type formField int

const (
	fieldName formField = iota
	fieldRole
	fieldInterest
	fieldObjective
	fieldCount
)

var roleOptions = []string{
	"Estudante",
	"Professor(a)",
	"Empreendedor(a)",
	"Visitante",
}

var interestOptions = []string{
	"Tecnologia",
	"Marketing",
	"Gestão e Negócios",
	"Design",
	"Empreendedorismo",
}

var objectiveOptions = []string{
	"conhecer os projetos",
	"encontrar oportunidades",
	"aprender algo novo",
	"conhecer a LIA",
}

// splashForm collects the visitor profile before the chat starts. The name is
// free text; the other fields cycle through fixed options.
type splashForm struct {
	name      string
	roleIdx   int
	interest  int
	objective int
	focus     formField
}

func newSplashForm() splashForm {
	return splashForm{}
}

// update handles one key press. It returns true when the form was submitted.
func (f *splashForm) update(msg tea.KeyMsg) (submitted bool) {
	switch msg.String() {
	case "enter":
		if f.focus == fieldObjective {
			return strings.TrimSpace(f.name) != ""
		}
		f.focus++
	case "tab", "down":
		f.focus = (f.focus + 1) % fieldCount
	case "shift+tab", "up":
		f.focus = (f.focus + fieldCount - 1) % fieldCount
	case "left":
		f.cycle(-1)
	case "right":
		f.cycle(1)
	case "backspace":
		if f.focus == fieldName && f.name != "" {
			runes := []rune(f.name)
			f.name = string(runes[:len(runes)-1])
		}
	default:
		if f.focus == fieldName && msg.Type == tea.KeyRunes {
			f.name += string(msg.Runes)
		}
		if f.focus == fieldName && msg.Type == tea.KeySpace {
			f.name += " "
		}
	}
	return false
}

func (f *splashForm) cycle(delta int) {
	switch f.focus {
	case fieldRole:
		f.roleIdx = mod(f.roleIdx+delta, len(roleOptions))
	case fieldInterest:
		f.interest = mod(f.interest+delta, len(interestOptions))
	case fieldObjective:
		f.objective = mod(f.objective+delta, len(objectiveOptions))
	}
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

func (f splashForm) role() string         { return roleOptions[f.roleIdx] }
func (f splashForm) interestArea() string { return interestOptions[f.interest] }
func (f splashForm) goal() string         { return objectiveOptions[f.objective] }

func (f splashForm) view() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("LIA") + subtitleStyle.Render("  Assistente do Metaday Fatec Sebrae"))
	b.WriteString("\n\n")

	nameValue := f.name
	if f.focus == fieldName {
		nameValue += "▌"
	}
	if nameValue == "" {
		nameValue = placeholderStyle.Render("digite seu nome...")
	}
	b.WriteString(f.label(fieldName, "Nome") + " " + nameValue + "\n")
	b.WriteString(f.label(fieldRole, "Você é") + " " + f.option(fieldRole, f.role()) + "\n")
	b.WriteString(f.label(fieldInterest, "Interesse") + " " + f.option(fieldInterest, f.interestArea()) + "\n")
	b.WriteString(f.label(fieldObjective, "Objetivo") + " " + f.option(fieldObjective, f.goal()) + "\n")

	b.WriteString("\n")
	b.WriteString(footerKeyStyle.Render("Enter") + footerDescStyle.Render(" avançar  "))
	b.WriteString(footerKeyStyle.Render("←/→") + footerDescStyle.Render(" opções  "))
	b.WriteString(footerKeyStyle.Render("Ctrl+C") + footerDescStyle.Render(" sair"))
	return b.String()
}

func (f splashForm) label(field formField, text string) string {
	text = text + ":"
	if f.focus == field {
		return labelActiveStyle.Render("> " + text)
	}
	return labelStyle.Render("  " + text)
}

func (f splashForm) option(field formField, value string) string {
	if f.focus == field {
		return whiteStyle.Render("◂ " + value + " ▸")
	}
	return dimStyle.Render(value)
}
