package words

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeList(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestNew_NormalisesAndFilters(t *testing.T) {
	d, err := New([]string{" CRANE ", "crane", "toolong", "ab1de", "slate"}, []string{"Moist", "abc"})
	require.NoError(t, err)

	a, g := d.Stats()
	assert.Equal(t, 2, a)
	assert.Equal(t, 3, g)
	assert.True(t, d.Contains("moist"))
	assert.True(t, d.Contains("CRANE"))
	assert.True(t, d.IsAnswer("slate"))
	assert.False(t, d.IsAnswer("moist"))
	assert.False(t, d.Contains("abc"))
}

func TestNew_EmptyAnswers(t *testing.T) {
	_, err := New([]string{"abc", "12345"}, []string{"crane"})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoad_Embedded(t *testing.T) {
	d, err := Load(Sources{})
	require.NoError(t, err)

	a, g := d.Stats()
	assert.Greater(t, a, 100)
	assert.Greater(t, g, a)
	assert.True(t, d.IsAnswer("speed"))
	assert.True(t, d.Contains("erase"))
	assert.True(t, d.Contains("adieu"))
	assert.False(t, d.IsAnswer("adieu"))
}

func TestLoad_Files(t *testing.T) {
	answers := writeList(t, "answers.txt", "crane\nslate\n")
	allowed := writeList(t, "allowed.txt", "moist\n\nnot-a-word\n")

	d, err := Load(Sources{AnswersFile: answers, AllowedFile: allowed})
	require.NoError(t, err)
	a, g := d.Stats()
	assert.Equal(t, 2, a)
	assert.Equal(t, 3, g)

	d, err = Load(Sources{AllowedFile: allowed})
	require.NoError(t, err)
	assert.True(t, d.IsAnswer("moist"))

	_, err = Load(Sources{AnswersFile: filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, err)
}

func TestRandom_Deterministic(t *testing.T) {
	d, err := New([]string{"crane", "slate", "moist", "speed"}, nil)
	require.NoError(t, err)

	draw := func() []string {
		r := rand.New(rand.NewPCG(7, 7))
		out := make([]string, 10)
		for i := range out {
			out[i] = d.Random(r)
		}
		return out
	}
	first := draw()
	assert.Equal(t, first, draw())
	for _, w := range first {
		assert.True(t, d.IsAnswer(w))
	}
}

type fixedRand int

func (f fixedRand) IntN(int) int { return int(f) }

func TestRandom_UsesSource(t *testing.T) {
	d, err := New([]string{"crane", "slate", "moist"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "moist", d.Random(fixedRand(2)))
}

func TestNewRand(t *testing.T) {
	r, err := NewRand()
	require.NoError(t, err)
	n := r.IntN(10)
	assert.GreaterOrEqual(t, n, 0)
	assert.Less(t, n, 10)
}
