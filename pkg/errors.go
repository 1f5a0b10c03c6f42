// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Go'da error'lar basit değerlerdir (string taşıyan struct'lar).
// errors.New() ile sabit error değişkenleri tanımlarız.
// Böylece error karşılaştırması string yerine referans ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Bu, typo'ya açık string karşılaştırmasından çok daha güvenlidir.
package pkg

import "errors"

// Domain-level error'lar.
// Handler katmanı bu error'ları HTTP status code'larına map'ler.
// Service katmanı bunları döner, handler yakalar.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")

	// ErrDependencyUnavailable: Mention çözümleme sırasında üyelik/kimlik
	// dizinine ulaşılamadı. Mesaj kaydedilmiş olabilir ama mention'lar
	// uygulanmamıştır — caller "kısmi ingest" olduğunu bilmelidir.
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrLedgerUnavailable: Unread sayacı atomik artırılamadı ve bounded
	// retry de tükendi. Sayaç asla "kayıp güncelleme" ile bozulmaz —
	// ya artar ya da bu error ile açıkça başarısız olur.
	ErrLedgerUnavailable = errors.New("unread ledger unavailable")
)
