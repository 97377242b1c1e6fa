// Package optimistic, önbelleğe alınmış bir koleksiyon üzerinde iyimser
// mutasyon sözleşmesini tek bir yerde, jenerik olarak uygular:
//
//  1. Mevcut önbellek anlık görüntülenir.
//  2. Değişiklik önbelleğe hemen uygulanır (iyimser).
//  3. Kalıcılık çağrısı yapılır.
//  4. Başarısızlıkta anlık görüntü aynen geri yüklenir.
//  5. Her durumda koleksiyon kanonik kaynaktan yeniden çekilir; nihai durum
//     daima son başarılı yeniden çekimin döndürdüğüdür.
//
// Sözleşme ağ gecikmesinden ve eşzamanlı mutasyon sırasından bağımsızdır.
package optimistic

import "context"

// Fetcher koleksiyonun kanonik halini kaynaktan okur.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Collection iyimser güncellenen, yeniden çekimle uzlaştırılan bir önbellektir.
type Collection[T any] struct {
	fetch Fetcher[T]
	items []T
}

// NewCollection boş bir önbellekle koleksiyonu kurar; ilk içerik Refresh ile gelir.
func NewCollection[T any](fetch Fetcher[T]) *Collection[T] {
	return &Collection[T]{fetch: fetch}
}

// Items önbelleğin bağımsız bir kopyasını döndürür.
func (c *Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Refresh koleksiyonu kanonik kaynaktan yeniden çeker.
// Çekim başarısız olursa önbellek olduğu gibi bırakılır.
func (c *Collection[T]) Refresh(ctx context.Context) error {
	fresh, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	c.items = fresh
	return nil
}

// Mutate iyimser mutasyon sözleşmesini uygular. apply önbelleğe uygulanacak
// değişikliği üretir; persist kalıcılık çağrısıdır. Dönen hata persist'in
// hatasıdır: kalıcılık başarısızsa önbellek anlık görüntüye döner ve hata
// çağırana (kullanıcıya bildirim için) iletilir. Her iki durumda da
// yeniden çekim denenir.
func (c *Collection[T]) Mutate(ctx context.Context, apply func(items []T) []T, persist func(ctx context.Context) error) error {
	snapshot := c.Items()

	c.items = apply(c.Items())

	persistErr := persist(ctx)
	if persistErr != nil {
		c.items = snapshot
	}

	// İyimser tahmin ile sunucu gerçeği arasındaki sapmayı kapatmak için
	// sonuç ne olursa olsun yeniden çek. Çekim hatası kalıcılık hatasını gölgelemez.
	_ = c.Refresh(ctx)

	return persistErr
}
