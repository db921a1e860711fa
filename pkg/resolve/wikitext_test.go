package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanWikiMarkup(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"template dropped", "{{figuré|fr}} tomber brusquement", "tomber brusquement"},
		{"piped link keeps display", "[[chute|Chute]] rapide", "Chute rapide"},
		{"plain link unwrapped", "une [[chute]] rapide", "une chute rapide"},
		{"emphasis removed", "une '''forte''' ''baisse''", "une forte baisse"},
		{"whitespace collapsed", "  trop   d'espaces \t ici ", "trop d'espaces ici"},
		{"all at once", "{{pop|fr}} [[tomber|Tomber]] ''très''  [[vite]]", "Tomber très vite"},
		{"empty after cleaning", "{{seulement un modèle}}", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cleanWikiMarkup(tc.in))
		})
	}
}

func TestFirstClause(t *testing.T) {
	assert.Equal(t, "Tomber brusquement", firstClause("Tomber brusquement. Deuxième phrase."))
	assert.Equal(t, "Tomber", firstClause("Tomber; chuter"))
	assert.Equal(t, "Sans ponctuation finale", firstClause("Sans ponctuation finale"))
}
