package profile

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Profile carries the visitor attributes attached to every backend request.
// It is created once at session start and never mutated afterwards.
type Profile struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	InterestArea string `json:"interestArea"`
	Objective    string `json:"objective"`
	SessionID    string `json:"sessionId"`
}

// New builds a Profile with a fresh session id.
func New(name, role, interestArea, objective string) Profile {
	return Profile{
		Name:         strings.TrimSpace(name),
		Role:         role,
		InterestArea: interestArea,
		Objective:    objective,
		SessionID:    uuid.NewString(),
	}
}

// specialGuests maps normalized guest names to how LIA introduces them.
var specialGuests = map[string]string{
	"clovis dias":                          "o presidente do Centro Paula Souza",
	"maycon geres":                         "o vice-presidente do Centro Paula Souza.",
	"robson dos santos":                    "o coordenador geral de Ensino Superior de Graduação do Centro Paula Souza",
	"divanil antunes urbano":               "o coordenador geral de Ensino Médio e Técnico do Centro Paula Souza",
	"paulo marcelo tavares ribeiro":        "o gerente da Unidade de Cultura Empreendedora do Sebrae-SP",
	"andré velasques de oliveira":          "o coordenador da Assessoria de Comunicação do Centro Paula Souza",
	"marcos antonio maia lavio de oliveira": "o coordenador da Fatec Itapevi",
	"paulo hélio kanayama":                 "o coordenador da Fatec Franco da Rocha",
	"marta da silva":                       "a chefe da Divisão Educacional Regional 5",
	"nelson hervey costa":                  "o diretor superintendente do Sebrae São Paulo",
	"marco vinholi":                        "o diretor técnico do Sebrae São Paulo.",
	"reinaldo pedro corrêa":                "o diretor de administração e finanças do Sebrae São Paulo",
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, trims and removes diacritics so that guest matching
// is accent and case insensitive.
func Normalize(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// MatchGuest checks the visitor name against the special-guest roster.
// A guest matches on full equality after normalization or when at least two
// words overlap. Returns the guest description and whether a match was found.
func MatchGuest(name string) (string, bool) {
	input := Normalize(name)
	if input == "" {
		return "", false
	}
	inputWords := strings.Fields(input)
	for guest, description := range specialGuests {
		g := Normalize(guest)
		if input == g {
			return description, true
		}
		guestWords := strings.Fields(g)
		matched := 0
		for _, w := range inputWords {
			for _, gw := range guestWords {
				if w == gw {
					matched++
					break
				}
			}
		}
		if matched >= 2 {
			return description, true
		}
	}
	return "", false
}

// WelcomeMessage returns the welcome turn for the given profile, both as
// markdown for the transcript and as plain text for speech synthesis.
func WelcomeMessage(p Profile) (markdown, plain string) {
	if description, ok := MatchGuest(p.Name); ok {
		markdown = fmt.Sprintf("Seja muito bem-vindo(a), **%s**! 👏\nÉ uma honra receber **%s** neste evento!\nEm que posso te ajudar?", p.Name, description)
		plain = fmt.Sprintf("Seja muito bem-vindo, %s! É uma honra receber %s neste evento! Em que posso te ajudar?", p.Name, description)
		return markdown, plain
	}
	markdown = fmt.Sprintf("Olá, **%s**! 👋\nQue legal que um(a) **%s** com interesse em **%s** veio nos visitar! Estou pronta para te ajudar a **%s**. Sobre o que quer saber primeiro?", p.Name, p.Role, p.InterestArea, p.Objective)
	plain = fmt.Sprintf("Olá, %s! Que legal que um %s com interesse em %s veio nos visitar! Estou pronta para te ajudar a %s. Sobre o que quer saber primeiro?", p.Name, p.Role, p.InterestArea, p.Objective)
	return markdown, plain
}
