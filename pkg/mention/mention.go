// Package mention, mesaj metnindeki @bahsetme token'larını parse eder.
//
// Bu paket bilinçli olarak "saf"tır: I/O yok, DB yok, state yok.
// Token'ın gerçek bir kullanıcıya mı yoksa broadcast'e mi karşılık
// geldiğine burada KARAR VERİLMEZ — o iş resolver'ındır (services).
// Saf fonksiyon = deterministik ve bağımlılıksız test edilebilir.
package mention

import "regexp"

// EveryoneToken, kanalın bağlı olduğu sunucunun TÜM üyelerine açılan
// broadcast mention keyword'üdür ("@everyone").
const EveryoneToken = "everyone"

// tokenRegex, metindeki @username kalıplarını bulur.
//
// Regex açıklaması:
// @      — literal @ karakteri (mention başlangıcı)
// (\w+)  — bir veya daha fazla kelime karakteri (harf, rakam, _)
//
// Örnekler:
//   "merhaba @ali nasılsın"  → ["ali"]
//   "@ali ve @veli"          → ["ali", "veli"]
//   "email@test.com"         → ["test"] — false positive, ama resolver
//                              katmanında username lookup ile elenir
//                              (dizinde "test" yoksa sessizce düşer)
var tokenRegex = regexp.MustCompile(`@(\w+)`)

// Parse, metindeki mention token'larını deduplicate edilmiş olarak döner.
//
// Garantiler:
//   - Sonuç bir set'tir: aynı token metinde kaç kez geçerse geçsin bir
//     kez döner — Parse("@a @a hi") == Parse("@a hi").
//   - İlk görülme sırası korunur (deterministik çıktı).
//   - Token eşleşmesi case-sensitive'dir — kimlik dizini exact match
//     kullandığı için burada lowercase'e çevrilmez.
//   - Hiç token yoksa boş (nil olmayan) slice döner.
func Parse(text string) []string {
	matches := tokenRegex.FindAllStringSubmatch(text, -1)

	seen := make(map[string]bool, len(matches))
	tokens := make([]string, 0, len(matches))

	for _, match := range matches {
		token := match[1]
		if seen[token] {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
	}

	return tokens
}

// Contains, parse edilmiş token listesinde verilen token var mı diye bakar.
// Resolver'ın broadcast token kontrolü için küçük bir yardımcı.
func Contains(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}
