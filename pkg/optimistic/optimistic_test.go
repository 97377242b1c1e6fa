package optimistic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore testlerde kanonik kaynağı temsil eder.
type fakeStore struct {
	rows     []string
	fetchErr error
	fetches  int
}

func (s *fakeStore) fetch(ctx context.Context) ([]string, error) {
	s.fetches++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	out := make([]string, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func TestMutateSuccessPersistsAndRefetches(t *testing.T) {
	store := &fakeStore{rows: []string{"a"}}
	c := NewCollection(store.fetch)
	require.NoError(t, c.Refresh(context.Background()))

	err := c.Mutate(context.Background(),
		func(items []string) []string { return append(items, "b") },
		func(ctx context.Context) error {
			store.rows = append(store.rows, "b")
			return nil
		},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, c.Items())
	assert.Equal(t, 2, store.fetches) // ilk Refresh + mutasyon sonrası uzlaştırma
}

// Kalıcılık başarısız olursa gözlemlenen durum mutasyon öncesi anlık görüntüye eşittir.
func TestMutateFailureRollsBack(t *testing.T) {
	store := &fakeStore{rows: []string{"a", "b"}}
	c := NewCollection(store.fetch)
	require.NoError(t, c.Refresh(context.Background()))

	persistErr := errors.New("store reddedildi")
	// Yeniden çekim de başarısız olsun ki rollback'in kendisi gözlemlensin
	store.fetchErr = errors.New("ağ yok")

	err := c.Mutate(context.Background(),
		func(items []string) []string { return items[:1] },
		func(ctx context.Context) error { return persistErr },
	)
	assert.ErrorIs(t, err, persistErr)
	assert.Equal(t, []string{"a", "b"}, c.Items())
}

// Başarısız kalıcılık + başarılı yeniden çekim: nihai durum sunucu gerçeğidir.
func TestMutateFailureReconcilesFromStore(t *testing.T) {
	store := &fakeStore{rows: []string{"a", "b"}}
	c := NewCollection(store.fetch)
	require.NoError(t, c.Refresh(context.Background()))

	err := c.Mutate(context.Background(),
		func(items []string) []string { return append(items, "c") },
		func(ctx context.Context) error { return errors.New("reddedildi") },
	)
	require.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, c.Items())
}

// N başarılı mutasyon sonrası önbellek, N ardışık doğrudan okumanın
// üreteceği duruma eşittir; iyimser ara durumlar iz bırakmaz.
func TestIdempotentRefetch(t *testing.T) {
	store := &fakeStore{}
	c := NewCollection(store.fetch)
	require.NoError(t, c.Refresh(context.Background()))

	for _, val := range []string{"x", "y", "z"} {
		err := c.Mutate(context.Background(),
			// İyimser tahmin kasıtlı olarak "yanlış" (başa ekliyor);
			// uzlaştırma sunucu sırasını getirmeli
			func(items []string) []string { return append([]string{val}, items...) },
			func(ctx context.Context) error {
				store.rows = append(store.rows, val)
				return nil
			},
		)
		require.NoError(t, err)
	}

	direct, err := store.fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, direct, c.Items())
	assert.Equal(t, []string{"x", "y", "z"}, c.Items())
}

// Aynı koleksiyona art arda iki commit; ikisi de çözülüp
// yeniden çekim yapıldıktan sonra son commit edilen niyet kazanır.
func TestLastCommittedIntentWins(t *testing.T) {
	store := &fakeStore{rows: []string{"a", "b", "c"}}
	c := NewCollection(store.fetch)
	require.NoError(t, c.Refresh(context.Background()))

	// Sürükleme #1: c'yi başa taşı. Kalıcılık gecikmeli tamamlansın diye
	// persist fonksiyonları sırayla ama store'a ters sırada yazsın.
	persist1 := func(ctx context.Context) error {
		store.rows = []string{"c", "a", "b"}
		return nil
	}
	persist2 := func(ctx context.Context) error {
		store.rows = []string{"b", "a", "c"}
		return nil
	}

	require.NoError(t, c.Mutate(context.Background(),
		func(items []string) []string { return []string{"c", "a", "b"} }, persist1))
	require.NoError(t, c.Mutate(context.Background(),
		func(items []string) []string { return []string{"b", "a", "c"} }, persist2))

	assert.Equal(t, []string{"b", "a", "c"}, c.Items())
}

func TestItemsReturnsCopy(t *testing.T) {
	store := &fakeStore{rows: []string{"a", "b"}}
	c := NewCollection(store.fetch)
	require.NoError(t, c.Refresh(context.Background()))

	items := c.Items()
	items[0] = "bozuldu"
	assert.Equal(t, []string{"a", "b"}, c.Items())
}
