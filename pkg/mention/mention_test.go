package mention

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "tek mention",
			text: "merhaba @ali nasılsın",
			want: []string{"ali"},
		},
		{
			name: "birden fazla mention",
			text: "@ali ve @veli toplantıya gelin",
			want: []string{"ali", "veli"},
		},
		{
			name: "duplicate token tek sefer döner",
			text: "@ali @ali @ali önemli",
			want: []string{"ali"},
		},
		{
			name: "broadcast token",
			text: "@everyone standup başlıyor",
			want: []string{"everyone"},
		},
		{
			name: "mention yok",
			text: "sadece düz bir mesaj",
			want: []string{},
		},
		{
			name: "boş metin",
			text: "",
			want: []string{},
		},
		{
			name: "case-sensitive — Ali ve ali farklı token",
			text: "@Ali @ali",
			want: []string{"Ali", "ali"},
		},
		{
			name: "email false positive — domain token olarak döner",
			text: "bana email@test.com adresinden ulaş",
			want: []string{"test"},
		},
		{
			name: "noktalama token'ı keser",
			text: "@ali, gelir misin?",
			want: []string{"ali"},
		},
		{
			name: "ilk görülme sırası korunur",
			text: "@cem @ali @cem @veli",
			want: []string{"cem", "ali", "veli"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Token tekrarına karşı invariant: parse sonucu bir set'tir.
func TestParseRepetitionInvariant(t *testing.T) {
	assert.Equal(t, Parse("@a hi"), Parse("@a @a hi"))
}

func TestParseNeverNil(t *testing.T) {
	assert.NotNil(t, Parse(""))
	assert.NotNil(t, Parse("hiç mention yok"))
}

func TestContains(t *testing.T) {
	tokens := Parse("@everyone ve @ali")
	assert.True(t, Contains(tokens, EveryoneToken))
	assert.True(t, Contains(tokens, "ali"))
	assert.False(t, Contains(tokens, "veli"))
}
